package http

import (
	gohttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/swap-router/internal/http/httputil"
	"github.com/hxuan190/swap-router/internal/services/router"
)

type SimulateHandler struct {
	routerSvc *router.Router
}

func NewSimulateHandler(routerSvc *router.Router) *SimulateHandler {
	return &SimulateHandler{routerSvc: routerSvc}
}

func (h *SimulateHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.simulate)
}

func (h *SimulateHandler) Root() string {
	return "/simulate"
}

// simulate godoc
// @Summary Simulate a swap across venues
// @Description Quotes the swap on every venue and dry-runs the best routes
// @Description without broadcasting a transaction.
// @Tags simulate
// @Produce json
// @Param inputMint query string true "Input token mint"
// @Param outputMint query string true "Output token mint"
// @Param amount query string true "Amount in smallest units"
// @Param slippageBps query int false "Slippage tolerance in bps"
// @Success 200 {object} httputil.Response{data=router.SimulationReport}
// @Failure 400 {object} httputil.Response
// @Failure 503 {object} httputil.Response
// @Router /api/v1/simulate [get]
func (h *SimulateHandler) simulate(c *gin.Context) {
	params, ok := parseQuoteParams(c)
	if !ok {
		return
	}
	results, err := h.routerSvc.Simulate(c.Request.Context(), params)
	if err != nil {
		httputil.Error(c, gohttp.StatusServiceUnavailable, err.Error())
		return
	}
	httputil.Success(c, results)
}
