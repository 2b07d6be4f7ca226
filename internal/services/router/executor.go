package router

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hxuan190/swap-router/internal/domain"
	"github.com/hxuan190/swap-router/internal/metrics"
)

// Trade selects the best venue for the request and executes against it with
// bounded retries and linear backoff. Execution failures come back as a
// failed TradeResult, never as an error: the error return covers only
// malformed parameters.
//
// The per-call state machine is QUOTING -> SELECTING -> EXECUTING with
// terminal states SUCCEEDED, FAILED_NO_ROUTE and FAILED_EXHAUSTED.
func (r *Router) Trade(ctx context.Context, params domain.TradeParams) (*domain.TradeResult, error) {
	start := time.Now()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.IdempotencyKey == "" {
		params.IdempotencyKey = uuid.NewString()
	}

	// QUOTING
	agg, err := r.QuoteAll(ctx, params.QuoteParams)
	if err != nil || agg.Best == nil {
		reason := domain.ErrNoValidQuotes.Error()
		if err != nil {
			reason = fmt.Sprintf("%s: %v", reason, err)
		}
		return r.finishTrade(nil, &domain.TradeResult{
			Success:        false,
			Error:          reason,
			IdempotencyKey: params.IdempotencyKey,
		}, start, 0)
	}

	// SELECTING
	venue := agg.Best.Venue
	adapter, err := r.registry.Get(venue)
	if err != nil {
		// Best quote referencing an unregistered venue means registration
		// discipline broke somewhere upstream.
		r.logger.Error().Str("venue", venue).Err(err).Msg("best quote references unregistered venue")
		return r.finishTrade(nil, &domain.TradeResult{
			Success:        false,
			Error:          fmt.Sprintf("%v: %s", domain.ErrAdapterNotFound, venue),
			IdempotencyKey: params.IdempotencyKey,
		}, start, 0)
	}
	params.RoutePayload = agg.Best.RoutePayload

	// EXECUTING, with strictly sequential retries. Every failure is retried
	// up to the limit; no retryable/terminal classification is applied here.
	var (
		result  *domain.TradeResult
		lastErr error
	)
	attempts := 0
	for attempt := 1; attempt <= r.cfg.MaxRetries; attempt++ {
		attempts = attempt
		result, lastErr = adapter.Trade(ctx, params)
		if lastErr == nil && result != nil && result.Success {
			break
		}
		if lastErr == nil {
			if result != nil && result.Error != "" {
				lastErr = errors.New(result.Error)
			} else {
				lastErr = domain.ErrTradeExecutionFailed
			}
		}
		r.logger.Warn().Str("venue", venue).Int("attempt", attempt).Err(lastErr).Msg("trade attempt failed")

		if attempt == r.cfg.MaxRetries {
			break
		}
		select {
		case <-time.After(r.cfg.RetryBaseDelay * time.Duration(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
			attempt = r.cfg.MaxRetries // stop retrying, context is gone
		}
		result = nil
	}

	if result == nil || !result.Success {
		result = &domain.TradeResult{
			Venue:          venue,
			Success:        false,
			Error:          fmt.Sprintf("%v after %d attempts: %v", domain.ErrTradeExecutionFailed, attempts, lastErr),
			IdempotencyKey: params.IdempotencyKey,
			Simulated:      params.DryRun,
		}
		return r.finishTrade(&venue, result, start, attempts)
	}

	result.Venue = venue
	result.IdempotencyKey = params.IdempotencyKey
	return r.finishTrade(&venue, result, start, attempts)
}

// finishTrade updates statistics, metrics and the journal, and emits the
// terminal lifecycle event. venue is nil for pre-flight failures that never
// selected one.
func (r *Router) finishTrade(venue *string, result *domain.TradeResult, start time.Time, attempts int) (*domain.TradeResult, error) {
	elapsed := time.Since(start)
	usedVenue := ""
	if venue != nil {
		usedVenue = *venue
	}
	r.stats.recordTrade(usedVenue, result.Success, elapsed)

	status := "failed"
	eventType := domain.EventTradeFailed
	if result.Success {
		status = "ok"
		eventType = domain.EventTradeCompleted
	}
	labelVenue := usedVenue
	if labelVenue == "" {
		labelVenue = "none"
	}
	metrics.TradeRequests.WithLabelValues(labelVenue, status).Inc()
	metrics.TradeDuration.WithLabelValues(labelVenue).Observe(elapsed.Seconds())
	if attempts > 0 {
		metrics.TradeAttempts.Observe(float64(attempts))
	}

	r.publish(domain.Event{
		Type:     eventType,
		Venue:    usedVenue,
		Error:    result.Error,
		Attempts: attempts,
		Elapsed:  elapsed,
	})

	if r.journal != nil {
		if err := r.journal.Record(result); err != nil {
			metrics.JournalWrites.WithLabelValues("error").Inc()
			r.logger.Error().Err(err).Str("idempotency_key", result.IdempotencyKey).Msg("journal write failed")
		} else {
			metrics.JournalWrites.WithLabelValues("ok").Inc()
		}
	}
	return result, nil
}
