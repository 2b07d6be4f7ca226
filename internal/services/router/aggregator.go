package router

import (
	"context"
	"fmt"
	"time"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/metrics"
	"github.com/hxuan190/swap-router/internal/services/scoring"
)

// quoteOutcome is one adapter's settled result during fan-out.
type quoteOutcome struct {
	venue string
	quote *domain.Quote
	err   error
}

// QuoteAll fans the request out to every registered adapter, filters the
// collected quotes and ranks them. When the whole fan-out yields nothing
// usable it retries the default venue alone with a longer timeout; only if
// that also fails does the call return ErrNoRouteAvailable.
//
// Best is nil when quotes were collected but none passed the quality filter.
func (r *Router) QuoteAll(ctx context.Context, params domain.QuoteParams) (*domain.AggregatedQuote, error) {
	start := time.Now()
	if err := params.Validate(); err != nil {
		metrics.QuoteRequests.WithLabelValues("invalid").Inc()
		return nil, err
	}

	var collected []*domain.Quote
	if r.cfg.ParallelQuotes {
		collected = r.quoteParallel(ctx, params)
	} else {
		collected = r.quoteSequential(ctx, params)
	}

	fallbackUsed := false
	if len(collected) == 0 {
		quote, err := r.quoteFallback(ctx, params)
		if err != nil {
			elapsed := time.Since(start)
			r.stats.recordQuote(elapsed)
			metrics.QuoteRequests.WithLabelValues("no_route").Inc()
			metrics.AggregationDuration.Observe(elapsed.Seconds())
			r.publish(domain.Event{
				Type:         domain.EventAggregationCompleted,
				Error:        err.Error(),
				FallbackUsed: true,
				Elapsed:      elapsed,
			})
			return nil, fmt.Errorf("%w: fallback venue %s: %v", domain.ErrNoRouteAvailable, r.cfg.DefaultVenue, err)
		}
		collected = []*domain.Quote{quote}
		fallbackUsed = true
		metrics.FallbackTotal.Inc()
		r.logger.Warn().Str("venue", quote.Venue).Msg("parallel quoting yielded nothing, served by fallback")
	}

	filtered := r.filterQuotes(collected)
	ranked := make([]*domain.Quote, 0, len(filtered))
	var best *domain.Quote
	for i, score := range scoring.ScoreQuotes(filtered, r.cfg.Weights) {
		if i == 0 {
			best = score.Quote
		}
		ranked = append(ranked, score.Quote)
	}

	elapsed := time.Since(start)
	r.stats.recordQuote(elapsed)
	metrics.QuoteRequests.WithLabelValues("ok").Inc()
	metrics.AggregationDuration.Observe(elapsed.Seconds())
	metrics.QuotesPerBatch.Observe(float64(len(ranked)))
	r.publish(domain.Event{
		Type:         domain.EventAggregationCompleted,
		QuoteCount:   len(ranked),
		FallbackUsed: fallbackUsed,
		Elapsed:      elapsed,
	})

	return &domain.AggregatedQuote{Quotes: ranked, Best: best, FallbackUsed: fallbackUsed}, nil
}

// quoteParallel issues one goroutine per adapter, each independently
// time-bounded. A failed or timed-out adapter is excluded from the batch and
// never cancels its siblings, so total latency is bounded by the timeout,
// not the sum.
func (r *Router) quoteParallel(ctx context.Context, params domain.QuoteParams) []*domain.Quote {
	adapters := r.registry.List()
	if len(adapters) == 0 {
		return nil
	}

	results := make(chan quoteOutcome, len(adapters))
	for _, a := range adapters {
		go func(a domain.Adapter) {
			results <- r.quoteOne(ctx, a, params, r.cfg.QuoteTimeout)
		}(a)
	}

	var quotes []*domain.Quote
	for range adapters {
		out := <-results
		if out.err != nil {
			r.logger.Warn().Str("venue", out.venue).Err(out.err).Msg("adapter excluded from batch")
			r.publish(domain.Event{Type: domain.EventQuoteError, Venue: out.venue, Error: out.err.Error()})
			continue
		}
		quotes = append(quotes, out.quote)
		r.publish(domain.Event{Type: domain.EventQuoteReceived, Venue: out.venue, Elapsed: out.quote.Latency})
	}
	return quotes
}

// quoteSequential tries the default venue first, then the remaining adapters
// in registration order. No racing: each call simply runs under its timeout
// and failures are skipped.
func (r *Router) quoteSequential(ctx context.Context, params domain.QuoteParams) []*domain.Quote {
	ordered := make([]domain.Adapter, 0, r.registry.Len())
	if def, err := r.registry.Get(r.cfg.DefaultVenue); err == nil {
		ordered = append(ordered, def)
	}
	for _, a := range r.registry.List() {
		if a.Venue() == r.cfg.DefaultVenue {
			continue
		}
		ordered = append(ordered, a)
	}

	var quotes []*domain.Quote
	for _, a := range ordered {
		qctx, cancel := context.WithTimeout(ctx, r.cfg.QuoteTimeout)
		start := time.Now()
		quote, err := a.Quote(qctx, params)
		cancel()
		if err != nil || quote == nil {
			if err == nil {
				err = domain.ErrQuoteUnavailable
			}
			metrics.AdapterQuotes.WithLabelValues(a.Venue(), "error").Inc()
			r.publish(domain.Event{Type: domain.EventQuoteError, Venue: a.Venue(), Error: err.Error()})
			continue
		}
		if quote.Latency == 0 {
			quote.Latency = time.Since(start)
		}
		metrics.AdapterQuotes.WithLabelValues(a.Venue(), "ok").Inc()
		r.publish(domain.Event{Type: domain.EventQuoteReceived, Venue: a.Venue(), Elapsed: quote.Latency})
		quotes = append(quotes, quote)
	}
	return quotes
}

// quoteFallback asks only the configured default adapter, with the longer
// fallback timeout.
func (r *Router) quoteFallback(ctx context.Context, params domain.QuoteParams) (*domain.Quote, error) {
	adapter, err := r.registry.Get(r.cfg.DefaultVenue)
	if err != nil {
		return nil, err
	}
	timeout := r.cfg.QuoteTimeout * time.Duration(r.cfg.FallbackTimeoutFactor)
	out := r.quoteOne(ctx, adapter, params, timeout)
	if out.err != nil {
		return nil, out.err
	}
	r.publish(domain.Event{Type: domain.EventQuoteReceived, Venue: out.venue, Elapsed: out.quote.Latency})
	return out.quote, nil
}

// quoteOne bounds a single adapter call by both a derived context and a
// select race, so an adapter that ignores cancellation still cannot stall
// the batch. A result arriving after the deadline is dropped; the context
// cancellation tells cooperative adapters (and subprocess-backed ones, which
// kill their child) to stop the in-flight work.
func (r *Router) quoteOne(ctx context.Context, a domain.Adapter, params domain.QuoteParams, timeout time.Duration) quoteOutcome {
	venue := a.Venue()
	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	done := make(chan quoteOutcome, 1)
	go func() {
		quote, err := a.Quote(qctx, params)
		done <- quoteOutcome{venue: venue, quote: quote, err: err}
	}()

	select {
	case out := <-done:
		elapsed := time.Since(start)
		metrics.AdapterQuoteDuration.WithLabelValues(venue).Observe(elapsed.Seconds())
		if out.err != nil {
			metrics.AdapterQuotes.WithLabelValues(venue, "error").Inc()
			return quoteOutcome{venue: venue, err: fmt.Errorf("%w: %s: %v", domain.ErrQuoteUnavailable, venue, out.err)}
		}
		if out.quote == nil {
			metrics.AdapterQuotes.WithLabelValues(venue, "error").Inc()
			return quoteOutcome{venue: venue, err: fmt.Errorf("%w: %s returned no quote", domain.ErrQuoteUnavailable, venue)}
		}
		if out.quote.Latency == 0 {
			out.quote.Latency = elapsed
		}
		metrics.AdapterQuotes.WithLabelValues(venue, "ok").Inc()
		return out
	case <-qctx.Done():
		metrics.AdapterQuotes.WithLabelValues(venue, "timeout").Inc()
		return quoteOutcome{venue: venue, err: fmt.Errorf("%w: %s: %v", domain.ErrQuoteUnavailable, venue, qctx.Err())}
	}
}

// filterQuotes drops quotes breaching the quality thresholds before scoring.
func (r *Router) filterQuotes(quotes []*domain.Quote) []*domain.Quote {
	filtered := make([]*domain.Quote, 0, len(quotes))
	for _, q := range quotes {
		metrics.PriceImpact.WithLabelValues(q.Venue).Observe(q.PriceImpactPct)
		if q.PriceImpactPct > r.cfg.MaxPriceImpactPct {
			r.logger.Debug().Str("venue", q.Venue).Float64("impact_pct", q.PriceImpactPct).Msg("quote rejected: price impact")
			continue
		}
		if q.Confidence < r.cfg.MinConfidence {
			r.logger.Debug().Str("venue", q.Venue).Float64("confidence", q.Confidence).Msg("quote rejected: confidence")
			continue
		}
		filtered = append(filtered, q)
	}
	return filtered
}
