// Package router implements the quote aggregation and trade routing engine:
// concurrent fan-out to venue adapters, scoring-based selection, and a
// bounded-retry execution path with a single-venue fallback.
package router

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hxuan190/swap-router/internal/config"
	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/metrics"
	"github.com/hxuan190/swap-router/internal/services"
)

const ROUTER_SERVICE = "router-service"

// TradeJournal persists completed trade results. Implementations must be
// safe for concurrent use; write failures are logged, never surfaced to the
// trade caller.
type TradeJournal interface {
	Record(res *domain.TradeResult) error
}

// Router is the process-wide routing engine. The only state it carries
// between calls is the registry and the statistics tracker.
type Router struct {
	cfg      config.RouterConfig
	registry *Registry
	stats    *statsTracker
	journal  TradeJournal
	logger   *services.ServiceLogger

	sinkMu sync.RWMutex
	sinks  []domain.EventSink
}

type Option func(*Router)

// WithJournal attaches a trade journal written after every trade call.
func WithJournal(j TradeJournal) Option {
	return func(r *Router) { r.journal = j }
}

// WithEventSink subscribes a sink at construction time.
func WithEventSink(s domain.EventSink) Option {
	return func(r *Router) { r.sinks = append(r.sinks, s) }
}

func New(cfg config.RouterConfig, opts ...Option) *Router {
	r := &Router{
		cfg:      cfg,
		registry: NewRegistry(),
		stats:    newStatsTracker(),
	}
	r.logger = services.NewServiceLogger(r)
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) ID() string {
	return ROUTER_SERVICE
}

// RegisterAdapter adds a venue adapter to the routing set.
func (r *Router) RegisterAdapter(a domain.Adapter) {
	r.registry.Register(a)
	r.logger.Info().Str("venue", a.Venue()).Msg("adapter registered")
	r.publish(domain.Event{Type: domain.EventAdapterRegistered, Venue: a.Venue()})
}

// Subscribe adds an event sink. Events are delivered synchronously in
// publish order; sinks must not block.
func (r *Router) Subscribe(s domain.EventSink) {
	r.sinkMu.Lock()
	defer r.sinkMu.Unlock()
	r.sinks = append(r.sinks, s)
}

func (r *Router) publish(ev domain.Event) {
	ev.At = time.Now()
	r.sinkMu.RLock()
	sinks := r.sinks
	r.sinkMu.RUnlock()
	for _, s := range sinks {
		s.Publish(ev)
	}
}

// Venues lists the registered venue names in registration order.
func (r *Router) Venues() []string {
	return r.registry.Venues()
}

// Stats returns a point-in-time copy of the router statistics.
func (r *Router) Stats() domain.RouterStats {
	return r.stats.snapshot()
}

// HealthCheck probes every registered adapter concurrently. Adapters without
// the HealthChecker capability count as healthy.
func (r *Router) HealthCheck(ctx context.Context) map[string]bool {
	adapters := r.registry.List()
	out := make(map[string]bool, len(adapters))

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, a := range adapters {
		g.Go(func() error {
			healthy := true
			if hc, ok := a.(domain.HealthChecker); ok {
				healthy = hc.HealthCheck(gctx)
			}
			mu.Lock()
			out[a.Venue()] = healthy
			mu.Unlock()

			val := 0.0
			if healthy {
				val = 1.0
			}
			metrics.VenueHealthy.WithLabelValues(a.Venue()).Set(val)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // probes never return errors
	return out
}

// SimulationReport pairs an aggregation result with per-venue dry runs from
// every adapter exposing the Simulator capability.
type SimulationReport struct {
	Quotes      []*domain.Quote            `json:"quotes"`
	Simulations []*domain.SimulationResult `json:"simulations"`
}

// Simulate aggregates quotes and dry-runs the request on every venue that
// supports simulation. Venues without the capability are simply absent from
// the simulations list.
func (r *Router) Simulate(ctx context.Context, params domain.QuoteParams) (*SimulationReport, error) {
	agg, err := r.QuoteAll(ctx, params)
	if err != nil {
		return nil, err
	}

	var (
		mu   sync.Mutex
		sims []*domain.SimulationResult
		wg   sync.WaitGroup
	)
	for _, a := range r.registry.List() {
		sim, ok := a.(domain.Simulator)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(venue string, sim domain.Simulator) {
			defer wg.Done()
			sctx, cancel := context.WithTimeout(ctx, r.cfg.QuoteTimeout)
			defer cancel()
			res, err := sim.Simulate(sctx, params)
			if err != nil {
				metrics.SimulationRequests.WithLabelValues(venue, "error").Inc()
				res = &domain.SimulationResult{Venue: venue, Success: false, Error: err.Error()}
			} else {
				metrics.SimulationRequests.WithLabelValues(venue, "ok").Inc()
			}
			mu.Lock()
			sims = append(sims, res)
			mu.Unlock()
		}(a.Venue(), sim)
	}
	wg.Wait()

	return &SimulationReport{Quotes: agg.Quotes, Simulations: sims}, nil
}
