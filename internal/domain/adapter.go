package domain

import "context"

// Adapter is the capability contract every venue backend satisfies.
//
// Quote must complete or fail, never return partial data. Trade executes (or
// simulates, when DryRun is set) a swap and must honor the idempotency key if
// the venue supports it. Implementations are called concurrently from
// overlapping aggregation calls and must be safe for concurrent use.
type Adapter interface {
	Venue() string
	Quote(ctx context.Context, params QuoteParams) (*Quote, error)
	Trade(ctx context.Context, params TradeParams) (*TradeResult, error)
}

// Simulator is an optional adapter capability: dry-run a swap without
// committing it. Check with a type assertion.
type Simulator interface {
	Simulate(ctx context.Context, params QuoteParams) (*SimulationResult, error)
}

// HealthChecker is an optional adapter capability. Adapters without it are
// treated as always healthy.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}
