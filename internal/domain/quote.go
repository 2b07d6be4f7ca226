package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/holiman/uint256"
)

// QuoteParams is an immutable quote request. Amounts are carried as decimal
// strings in the smallest token unit so no precision is lost on the wire.
type QuoteParams struct {
	InputMint   string `json:"inputMint"`
	OutputMint  string `json:"outputMint"`
	Amount      string `json:"amount"`
	SlippageBps uint16 `json:"slippageBps"`
}

// Validate checks structural invariants: amount > 0 and slippage within
// [0, 10000] bps. Mint format validation belongs to the transport layer.
func (p QuoteParams) Validate() error {
	amount, err := uint256.FromDecimal(p.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", p.Amount, err)
	}
	if amount.IsZero() {
		return fmt.Errorf("amount must be greater than zero")
	}
	if p.SlippageBps > 10000 {
		return fmt.Errorf("slippageBps %d out of range [0, 10000]", p.SlippageBps)
	}
	if p.InputMint == "" || p.OutputMint == "" {
		return fmt.Errorf("input and output mints are required")
	}
	return nil
}

// Quote is one venue's answer to a QuoteParams. Quotes are value objects:
// at most one per adapter per aggregation call, never reused across calls.
//
// Latency, Fee and ComputeUnits are optional; zero means the venue did not
// report the field and scoring degrades it to a neutral contribution.
type Quote struct {
	Venue          string          `json:"venue"`
	ExpectedOut    string          `json:"expectedOut"`
	PriceImpactPct float64         `json:"priceImpactPct"`
	RoutePayload   json.RawMessage `json:"routePayload,omitempty"`
	Latency        time.Duration   `json:"latencyNs,omitempty"`
	Fee            uint64          `json:"fee,omitempty"`
	ComputeUnits   uint32          `json:"computeUnits,omitempty"`
	Confidence     float64         `json:"confidence"`
	Hops           int             `json:"hops"`
	SlippageBpsEst uint16          `json:"slippageBpsEst,omitempty"`
	LiquidityScore float64         `json:"liquidityScore"`
}

// AggregatedQuote is the result of one aggregation call.
// Best is nil when nothing passed the quality filter.
type AggregatedQuote struct {
	Quotes       []*Quote `json:"quotes"`
	Best         *Quote   `json:"best,omitempty"`
	FallbackUsed bool     `json:"fallbackUsed"`
}

// SimulationResult is the outcome of a dry-run execution on one venue.
type SimulationResult struct {
	Venue        string   `json:"venue"`
	Success      bool     `json:"success"`
	ExpectedOut  string   `json:"expectedOut,omitempty"`
	ComputeUnits uint32   `json:"computeUnits,omitempty"`
	Logs         []string `json:"logs,omitempty"`
	Error        string   `json:"error,omitempty"`
}
