package http

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/http/httputil"
	"github.com/hxuan190/swap-router/internal/services/router"
)

type TradeHandler struct {
	executor router.Executor
}

func NewTradeHandler(executor router.Executor) *TradeHandler {
	return &TradeHandler{executor: executor}
}

func (h *TradeHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	private.POST("", h.trade)
}

func (h *TradeHandler) Root() string {
	return "/trade"
}

// TradeRequest represents a swap execution request
type TradeRequest struct {
	// Input token mint address (base58 public key)
	InputMint string `json:"inputMint" binding:"required" example:"So11111111111111111111111111111111111111112"`

	// Output token mint address (base58 public key)
	OutputMint string `json:"outputMint" binding:"required" example:"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"`

	// Amount in smallest token units
	Amount string `json:"amount" binding:"required" example:"1000000000"`

	// Slippage tolerance in basis points. Default: 50.
	SlippageBps uint16 `json:"slippageBps" example:"50"`

	// Execution mode: simple, jito or bloxroute. Default: simple.
	Mode string `json:"mode" example:"simple"`

	// Client-supplied idempotency key. Replays with the same key return the
	// cached result instead of executing twice.
	IdempotencyKey string `json:"idempotencyKey"`

	// When true the trade is simulated instead of broadcast.
	DryRun bool `json:"dryRun"`
}

// trade godoc
// @Summary Execute a swap on the best venue
// @Description Aggregates quotes, picks the best venue and executes the swap
// @Description with bounded retries. Execution failures are reported in the
// @Description result body, not as transport errors.
// @Tags trade
// @Accept json
// @Produce json
// @Param request body TradeRequest true "Trade request"
// @Success 200 {object} httputil.Response{data=domain.TradeResult}
// @Failure 400 {object} httputil.Response
// @Failure 500 {object} httputil.Response
// @Router /api/v1/trade [post]
func (h *TradeHandler) trade(c *gin.Context) {
	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if req.SlippageBps == 0 {
		req.SlippageBps = 50
	}
	if req.Mode == "" {
		req.Mode = domain.ExecModeSimple
	}
	switch req.Mode {
	case domain.ExecModeSimple, domain.ExecModeJito, domain.ExecModeBloxroute:
	default:
		httputil.BadRequest(c, "unknown execution mode: "+req.Mode)
		return
	}
	if _, err := solana.PublicKeyFromBase58(req.InputMint); err != nil {
		httputil.BadRequest(c, "invalid inputMint: "+err.Error())
		return
	}
	if _, err := solana.PublicKeyFromBase58(req.OutputMint); err != nil {
		httputil.BadRequest(c, "invalid outputMint: "+err.Error())
		return
	}

	params := domain.TradeParams{
		QuoteParams: domain.QuoteParams{
			InputMint:   req.InputMint,
			OutputMint:  req.OutputMint,
			Amount:      req.Amount,
			SlippageBps: req.SlippageBps,
		},
		Mode:           req.Mode,
		IdempotencyKey: req.IdempotencyKey,
		DryRun:         req.DryRun,
	}
	if err := params.Validate(); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	result, err := h.executor.Trade(c.Request.Context(), params)
	if err != nil {
		httputil.InternalError(c, err.Error())
		return
	}
	httputil.Success(c, result)
}
