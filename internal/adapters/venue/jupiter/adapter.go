package jupiter

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/hxuan190/swap-router/internal/domain"
)

const VenueName = "jupiter"

// TradeExecutor executes the swap that a Jupiter quote describes. In
// production this is the external executor subprocess.
type TradeExecutor interface {
	Swap(ctx context.Context, params domain.TradeParams) (*domain.TradeResult, error)
	Simulate(ctx context.Context, params domain.QuoteParams) (*domain.SimulationResult, error)
}

// Adapter is the Jupiter venue: HTTP quoting, delegated execution.
type Adapter struct {
	client *Client
	exec   TradeExecutor
}

func NewAdapter(client *Client, exec TradeExecutor) *Adapter {
	return &Adapter{client: client, exec: exec}
}

func (a *Adapter) Venue() string {
	return VenueName
}

// Quote translates a Jupiter quote into the venue-neutral shape. The raw API
// response rides along as the opaque route payload so execution can reuse
// the exact route instead of re-quoting.
func (a *Adapter) Quote(ctx context.Context, params domain.QuoteParams) (*domain.Quote, error) {
	if _, err := solana.PublicKeyFromBase58(params.InputMint); err != nil {
		return nil, fmt.Errorf("input mint: %w", err)
	}
	if _, err := solana.PublicKeyFromBase58(params.OutputMint); err != nil {
		return nil, fmt.Errorf("output mint: %w", err)
	}

	start := time.Now()
	quote, raw, err := a.client.GetQuote(ctx, params.InputMint, params.OutputMint, params.Amount, params.SlippageBps)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	impactPct, _ := strconv.ParseFloat(quote.PriceImpactPct, 64)
	hops := len(quote.RoutePlan)
	if hops < 1 {
		hops = 1
	}

	var fee uint64
	if quote.PlatformFee != nil {
		fee, _ = strconv.ParseUint(quote.PlatformFee.Amount, 10, 64)
	}

	return &domain.Quote{
		Venue:          VenueName,
		ExpectedOut:    quote.OutAmount,
		PriceImpactPct: impactPct,
		RoutePayload:   raw,
		Latency:        elapsed,
		Fee:            fee,
		Confidence:     confidenceFor(hops, impactPct),
		Hops:           hops,
		SlippageBpsEst: quote.SlippageBps,
		LiquidityScore: liquidityFor(impactPct),
	}, nil
}

func (a *Adapter) Trade(ctx context.Context, params domain.TradeParams) (*domain.TradeResult, error) {
	res, err := a.exec.Swap(ctx, params)
	if err != nil {
		return nil, err
	}
	res.Venue = VenueName
	return res, nil
}

func (a *Adapter) Simulate(ctx context.Context, params domain.QuoteParams) (*domain.SimulationResult, error) {
	sim, err := a.exec.Simulate(ctx, params)
	if err != nil {
		return nil, err
	}
	sim.Venue = VenueName
	return sim, nil
}

func (a *Adapter) HealthCheck(ctx context.Context) bool {
	return a.client.Health(ctx)
}

// confidenceFor starts high for a direct low-impact route and decays with
// route complexity. The API reports no confidence of its own.
func confidenceFor(hops int, impactPct float64) float64 {
	c := 0.95 - 0.05*float64(hops-1) - impactPct/100
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// liquidityFor treats observed price impact as the inverse liquidity signal.
func liquidityFor(impactPct float64) float64 {
	l := 1 - impactPct/10
	if l < 0 {
		return 0
	}
	if l > 1 {
		return 1
	}
	return l
}
