// Package execproc invokes the external trade executor binary. The binary
// owns transaction construction, signing and confirmation; this package only
// translates parameters to CLI flags and parses the JSON result printed on
// stdout.
package execproc

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/swap-router/internal/domain"
)

// Result is the executor's stdout contract, one JSON object per invocation.
// The executor prints it on failure too (with a non-zero exit code), so a
// parseable stdout always wins over the exit status.
type Result struct {
	Success          bool     `json:"success"`
	Signature        string   `json:"signature,omitempty"`
	ReceivedAmount   string   `json:"received_amount,omitempty"`
	Slot             uint64   `json:"slot,omitempty"`
	Error            string   `json:"error,omitempty"`
	Logs             []string `json:"logs,omitempty"`
	ExpectedOut      string   `json:"expected_out,omitempty"`
	ComputeUnitsUsed uint32   `json:"compute_units_used,omitempty"`
	IdempotencyKey   string   `json:"idempotency_key,omitempty"`
}

// Runner shells out to the executor binary. It is stateless and safe for
// concurrent use; every invocation is an independent process.
type Runner struct {
	binary string
	rpcURL string
	wallet string
	mode   string
}

func NewRunner(binary, rpcURL, wallet, mode string) *Runner {
	if mode == "" {
		mode = domain.ExecModeSimple
	}
	return &Runner{binary: binary, rpcURL: rpcURL, wallet: wallet, mode: mode}
}

// Swap executes (or, for DryRun, simulates) a swap through the executor.
func (r *Runner) Swap(ctx context.Context, params domain.TradeParams) (*domain.TradeResult, error) {
	if params.DryRun {
		sim, err := r.Simulate(ctx, params.QuoteParams)
		if err != nil {
			return nil, err
		}
		return &domain.TradeResult{
			Simulated:      true,
			Success:        sim.Success,
			ReceivedAmount: sim.ExpectedOut,
			Error:          sim.Error,
			IdempotencyKey: params.IdempotencyKey,
		}, nil
	}

	mode := params.Mode
	if mode == "" {
		mode = r.mode
	}
	args := []string{
		"swap",
		"--input-mint", params.InputMint,
		"--output-mint", params.OutputMint,
		"--amount", params.Amount,
		"--slippage-bps", strconv.Itoa(int(params.SlippageBps)),
		"--wallet", walletOrDefault(params.Wallet, r.wallet),
		"--rpc-url", r.rpcURL,
		"--mode", mode,
	}
	if params.IdempotencyKey != "" {
		args = append(args, "--idempotency-key", params.IdempotencyKey)
	}
	if len(params.RoutePayload) > 0 {
		args = append(args, "--route-info", string(params.RoutePayload))
	}

	res, err := r.run(ctx, args)
	if err != nil {
		return nil, err
	}

	key := res.IdempotencyKey
	if key == "" {
		key = params.IdempotencyKey
	}
	return &domain.TradeResult{
		Signature:      res.Signature,
		ReceivedAmount: res.ReceivedAmount,
		Slot:           res.Slot,
		Success:        res.Success,
		Error:          res.Error,
		IdempotencyKey: key,
	}, nil
}

// Simulate dry-runs the swap without committing it.
func (r *Runner) Simulate(ctx context.Context, params domain.QuoteParams) (*domain.SimulationResult, error) {
	args := []string{
		"simulate",
		"--input-mint", params.InputMint,
		"--output-mint", params.OutputMint,
		"--amount", params.Amount,
		"--slippage-bps", strconv.Itoa(int(params.SlippageBps)),
		"--rpc-url", r.rpcURL,
	}
	res, err := r.run(ctx, args)
	if err != nil {
		return nil, err
	}
	return &domain.SimulationResult{
		Success:      res.Success,
		ExpectedOut:  res.ExpectedOut,
		ComputeUnits: res.ComputeUnitsUsed,
		Logs:         res.Logs,
		Error:        res.Error,
	}, nil
}

// run spawns the executor. exec.CommandContext kills the process when the
// context expires: a timed-out call must not leak a child still trying to
// land a transaction.
func (r *Runner) run(ctx context.Context, args []string) (*Result, error) {
	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, fmt.Errorf("executor %s: %w", args[0], ctx.Err())
	}

	// Non-zero exit still carries a result JSON on stdout.
	var res Result
	if err := sonic.Unmarshal(stdout.Bytes(), &res); err != nil {
		if runErr != nil {
			return nil, fmt.Errorf("executor %s: %w: %s", args[0], runErr, stderr.String())
		}
		return nil, fmt.Errorf("executor %s: bad output: %w", args[0], err)
	}
	if runErr != nil && res.Error == "" {
		res.Success = false
		res.Error = runErr.Error()
	}
	log.Debug().Str("command", args[0]).Bool("success", res.Success).Msg("[execproc] executor finished")
	return &res, nil
}

func walletOrDefault(wallet, def string) string {
	if wallet != "" {
		return wallet
	}
	return def
}
