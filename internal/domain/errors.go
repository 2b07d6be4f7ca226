package domain

import "errors"

var (
	// ErrQuoteUnavailable marks a single adapter failing or timing out during
	// aggregation. Non-fatal: the adapter is excluded from that batch.
	ErrQuoteUnavailable = errors.New("quote unavailable")

	// ErrNoRouteAvailable means both the parallel fan-out and the fallback
	// produced zero usable quotes. Fatal for the aggregation call.
	ErrNoRouteAvailable = errors.New("no route available")

	// ErrNoValidQuotes means the executor could not obtain a best quote before
	// attempting a trade. Surfaced as a failed TradeResult, never returned as
	// an error from Trade.
	ErrNoValidQuotes = errors.New("no valid quotes")

	// ErrAdapterNotFound is an internal consistency error: the best quote
	// references a venue with no registered adapter.
	ErrAdapterNotFound = errors.New("adapter not found")

	// ErrTradeExecutionFailed wraps the last error after retries are exhausted.
	ErrTradeExecutionFailed = errors.New("trade execution failed")
)
