package domain

import "encoding/json"

// Execution modes understood by the trade execution layer. Unknown modes fall
// back to ExecModeSimple at the executor boundary.
const (
	ExecModeSimple    = "simple"
	ExecModeJito      = "jito"
	ExecModeBloxroute = "bloxroute"
)

// TradeParams extends QuoteParams with execution parameters.
//
// IdempotencyKey is an opaque caller-supplied token. The router only threads
// it through to the venue/execution layer; deduplication by key is the
// execution layer's job (or the optional cached executor's).
type TradeParams struct {
	QuoteParams

	Mode           string `json:"mode,omitempty"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
	DryRun         bool   `json:"dryRun,omitempty"`
	Wallet         string `json:"wallet,omitempty"`

	// RoutePayload is the winning quote's opaque route, threaded through by
	// the executor so the venue does not have to re-quote. Never inspected
	// by the router core.
	RoutePayload json.RawMessage `json:"routePayload,omitempty"`
}

// TradeResult is the uniform outcome of a trade call. Callers always get one
// of these, never an error, for execution-level failures: Success and Error
// communicate what happened.
type TradeResult struct {
	Venue          string `json:"venue,omitempty"`
	Signature      string `json:"signature,omitempty"`
	ReceivedAmount string `json:"receivedAmount,omitempty"`
	Slot           uint64 `json:"slot,omitempty"`
	Simulated      bool   `json:"simulated"`
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// RouterStats is the process-lifetime aggregate kept by the router.
// AverageLatency uses the historical (old+new)/2 decaying update; that is the
// documented semantics, not a true moving average.
type RouterStats struct {
	TotalQuotes    uint64            `json:"totalQuotes"`
	TotalTrades    uint64            `json:"totalTrades"`
	SuccessRate    float64           `json:"successRate"`
	AverageLatency float64           `json:"averageLatencyMs"`
	DexUsage       map[string]uint64 `json:"dexUsage"`
	LastUpdated    int64             `json:"lastUpdated"`
}
