package http

import (
	gohttp "net/http"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/http/httputil"
	"github.com/hxuan190/swap-router/internal/services/router"
)

type QuoteHandler struct {
	routerSvc *router.Router
}

func NewQuoteHandler(routerSvc *router.Router) *QuoteHandler {
	return &QuoteHandler{routerSvc: routerSvc}
}

func (h *QuoteHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.getQuote)
}

func (h *QuoteHandler) Root() string {
	return "/quote"
}

// QuoteRequest represents the parameters for an aggregated quote
type QuoteRequest struct {
	// Input token mint address (base58 public key)
	InputMint string `form:"inputMint" binding:"required" example:"So11111111111111111111111111111111111111112"`

	// Output token mint address (base58 public key)
	OutputMint string `form:"outputMint" binding:"required" example:"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"`

	// Amount in smallest token units
	Amount string `form:"amount" binding:"required" example:"1000000000"`

	// Slippage tolerance in basis points (1 bps = 0.01%). Default: 50.
	SlippageBps uint16 `form:"slippageBps" example:"50"`
}

// parseQuoteParams validates the request into domain params. Mint format is
// checked here so adapters can assume well-formed keys.
func parseQuoteParams(c *gin.Context) (domain.QuoteParams, bool) {
	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return domain.QuoteParams{}, false
	}
	if req.SlippageBps == 0 {
		req.SlippageBps = 50
	}
	if _, err := solana.PublicKeyFromBase58(req.InputMint); err != nil {
		httputil.BadRequest(c, "invalid inputMint: "+err.Error())
		return domain.QuoteParams{}, false
	}
	if _, err := solana.PublicKeyFromBase58(req.OutputMint); err != nil {
		httputil.BadRequest(c, "invalid outputMint: "+err.Error())
		return domain.QuoteParams{}, false
	}
	params := domain.QuoteParams{
		InputMint:   req.InputMint,
		OutputMint:  req.OutputMint,
		Amount:      req.Amount,
		SlippageBps: req.SlippageBps,
	}
	if err := params.Validate(); err != nil {
		httputil.BadRequest(c, err.Error())
		return domain.QuoteParams{}, false
	}
	return params, true
}

// getQuote godoc
// @Summary Get the ranked quotes for a swap
// @Description Fans the request out to every registered venue, filters and
// @Description scores the quotes and returns them best first.
// @Tags quote
// @Produce json
// @Param inputMint query string true "Input token mint"
// @Param outputMint query string true "Output token mint"
// @Param amount query string true "Amount in smallest units"
// @Param slippageBps query int false "Slippage tolerance in bps"
// @Success 200 {object} httputil.Response{data=domain.AggregatedQuote}
// @Failure 400 {object} httputil.Response
// @Failure 503 {object} httputil.Response
// @Router /api/v1/quote [get]
func (h *QuoteHandler) getQuote(c *gin.Context) {
	params, ok := parseQuoteParams(c)
	if !ok {
		return
	}
	agg, err := h.routerSvc.QuoteAll(c.Request.Context(), params)
	if err != nil {
		httputil.Error(c, gohttp.StatusServiceUnavailable, err.Error())
		return
	}
	httputil.Success(c, agg)
}
