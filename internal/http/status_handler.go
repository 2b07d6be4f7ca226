package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hxuan190/swap-router/internal/http/httputil"
	"github.com/hxuan190/swap-router/internal/services/router"
)

type StatsHandler struct {
	routerSvc *router.Router
}

func NewStatsHandler(routerSvc *router.Router) *StatsHandler {
	return &StatsHandler{routerSvc: routerSvc}
}

func (h *StatsHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.getStats)
}

func (h *StatsHandler) Root() string {
	return "/stats"
}

// getStats godoc
// @Summary Routing statistics
// @Description Returns cumulative trade counters, per-venue usage, the rolling
// @Description success rate and the smoothed quote latency.
// @Tags stats
// @Produce json
// @Success 200 {object} httputil.Response{data=domain.RouterStats}
// @Router /api/v1/stats [get]
func (h *StatsHandler) getStats(c *gin.Context) {
	httputil.Success(c, h.routerSvc.Stats())
}

type VenueHandler struct {
	routerSvc *router.Router
}

func NewVenueHandler(routerSvc *router.Router) *VenueHandler {
	return &VenueHandler{routerSvc: routerSvc}
}

func (h *VenueHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.listVenues)
	pub.GET("/health", h.venueHealth)
}

func (h *VenueHandler) Root() string {
	return "/venues"
}

// listVenues godoc
// @Summary Registered venues
// @Tags venues
// @Produce json
// @Success 200 {object} httputil.Response{data=[]string}
// @Router /api/v1/venues [get]
func (h *VenueHandler) listVenues(c *gin.Context) {
	httputil.Success(c, h.routerSvc.Venues())
}

// venueHealth godoc
// @Summary Per-venue health
// @Description Probes every registered venue and reports reachability.
// @Tags venues
// @Produce json
// @Success 200 {object} httputil.Response{data=map[string]bool}
// @Router /api/v1/venues/health [get]
func (h *VenueHandler) venueHealth(c *gin.Context) {
	httputil.Success(c, h.routerSvc.HealthCheck(c.Request.Context()))
}
