package execproc

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go/rpc"

	"github.com/hxuan190/swap-router/internal/domain"
)

const VenueName = "exec"

// simQuoteConfidence reflects that a quote derived from a live on-chain
// simulation is close to what execution would produce.
const simQuoteConfidence = 0.9

// Adapter exposes the executor binary as a venue of its own: quotes come
// from on-chain simulation, trades go straight through the executor.
type Adapter struct {
	runner *Runner
	rpc    *rpc.Client
}

func NewAdapter(runner *Runner, rpcURL string) *Adapter {
	return &Adapter{runner: runner, rpc: rpc.New(rpcURL)}
}

func (a *Adapter) Venue() string {
	return VenueName
}

// Quote simulates the swap and shapes the outcome as a quote. The simulation
// does not report price impact or route shape, so those fields stay at their
// neutral values and scoring treats them accordingly.
func (a *Adapter) Quote(ctx context.Context, params domain.QuoteParams) (*domain.Quote, error) {
	start := time.Now()
	sim, err := a.runner.Simulate(ctx, params)
	if err != nil {
		return nil, err
	}
	if !sim.Success {
		return nil, fmt.Errorf("simulation rejected: %s", sim.Error)
	}
	return &domain.Quote{
		Venue:          VenueName,
		ExpectedOut:    sim.ExpectedOut,
		Latency:        time.Since(start),
		ComputeUnits:   sim.ComputeUnits,
		Confidence:     simQuoteConfidence,
		Hops:           1,
		SlippageBpsEst: params.SlippageBps,
		LiquidityScore: 0.5,
	}, nil
}

func (a *Adapter) Trade(ctx context.Context, params domain.TradeParams) (*domain.TradeResult, error) {
	res, err := a.runner.Swap(ctx, params)
	if err != nil {
		return nil, err
	}
	res.Venue = VenueName
	return res, nil
}

func (a *Adapter) Simulate(ctx context.Context, params domain.QuoteParams) (*domain.SimulationResult, error) {
	sim, err := a.runner.Simulate(ctx, params)
	if err != nil {
		return nil, err
	}
	sim.Venue = VenueName
	return sim, nil
}

// HealthCheck asks the RPC node directly instead of spawning the executor's
// ping command; a dead node means the executor cannot land anything anyway.
func (a *Adapter) HealthCheck(ctx context.Context) bool {
	out, err := a.rpc.GetHealth(ctx)
	return err == nil && out == rpc.HealthOk
}
