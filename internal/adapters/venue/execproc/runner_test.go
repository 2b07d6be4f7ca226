package execproc

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/hxuan190/swap-router/internal/domain"
)

const (
	solMint  = "So11111111111111111111111111111111111111112"
	usdcMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// fakeExecutor writes a shell script standing in for the executor binary. It
// records its arguments to argsFile, prints stdout and exits with code.
func fakeExecutor(t *testing.T, stdout string, code int) (binary, argsFile string) {
	t.Helper()
	dir := t.TempDir()
	binary = filepath.Join(dir, "exec")
	argsFile = filepath.Join(dir, "args")

	script := "#!/bin/sh\n" +
		"printf '%s ' \"$@\" > " + argsFile + "\n" +
		"cat <<'EOF'\n" + stdout + "\nEOF\n" +
		"exit " + strconv.Itoa(code) + "\n"
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return binary, argsFile
}

func recordedArgs(t *testing.T, argsFile string) string {
	t.Helper()
	data, err := os.ReadFile(argsFile)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func tradeParams() domain.TradeParams {
	return domain.TradeParams{
		QuoteParams: domain.QuoteParams{
			InputMint:   solMint,
			OutputMint:  usdcMint,
			Amount:      "1000000000",
			SlippageBps: 50,
		},
		Mode:           domain.ExecModeSimple,
		IdempotencyKey: "idem-1",
		RoutePayload:   json.RawMessage(`{"routePlan":[]}`),
	}
}

func TestSwapSuccess(t *testing.T) {
	out := `{"success":true,"signature":"5abc","received_amount":"995000","slot":271000000,"idempotency_key":"idem-1"}`
	binary, argsFile := fakeExecutor(t, out, 0)
	r := NewRunner(binary, "http://rpc.test", "/tmp/wallet.json", "simple")

	res, err := r.Swap(context.Background(), tradeParams())
	if err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if !res.Success {
		t.Errorf("Success = false, want true: %s", res.Error)
	}
	if res.Signature != "5abc" || res.ReceivedAmount != "995000" || res.Slot != 271000000 {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.IdempotencyKey != "idem-1" {
		t.Errorf("IdempotencyKey = %q, want idem-1", res.IdempotencyKey)
	}

	args := recordedArgs(t, argsFile)
	for _, want := range []string{
		"swap",
		"--input-mint " + solMint,
		"--output-mint " + usdcMint,
		"--amount 1000000000",
		"--slippage-bps 50",
		"--wallet /tmp/wallet.json",
		"--rpc-url http://rpc.test",
		"--mode simple",
		"--idempotency-key idem-1",
		"--route-info",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args missing %q: %s", want, args)
		}
	}
}

func TestSwapFailureExitCodeStillParsed(t *testing.T) {
	out := `{"success":false,"error":"slippage exceeded","logs":["Program log: slippage check failed"]}`
	binary, _ := fakeExecutor(t, out, 1)
	r := NewRunner(binary, "http://rpc.test", "/tmp/wallet.json", "simple")

	res, err := r.Swap(context.Background(), tradeParams())
	if err != nil {
		t.Fatalf("non-zero exit with parseable stdout must not error: %v", err)
	}
	if res.Success {
		t.Error("Success = true, want false")
	}
	if res.Error != "slippage exceeded" {
		t.Errorf("Error = %q, want the executor's message", res.Error)
	}
}

func TestSwapBadOutput(t *testing.T) {
	binary, _ := fakeExecutor(t, "not json at all", 0)
	r := NewRunner(binary, "http://rpc.test", "", "simple")

	if _, err := r.Swap(context.Background(), tradeParams()); err == nil {
		t.Error("expected error for unparseable stdout")
	}
}

func TestSwapDryRunUsesSimulate(t *testing.T) {
	out := `{"success":true,"expected_out":"995000","compute_units_used":180000,"logs":["Program log: ok"]}`
	binary, argsFile := fakeExecutor(t, out, 0)
	r := NewRunner(binary, "http://rpc.test", "", "simple")

	params := tradeParams()
	params.DryRun = true
	res, err := r.Swap(context.Background(), params)
	if err != nil {
		t.Fatalf("Swap dry run: %v", err)
	}
	if !res.Simulated || !res.Success {
		t.Errorf("expected simulated success, got %+v", res)
	}
	if res.ReceivedAmount != "995000" {
		t.Errorf("ReceivedAmount = %q, want 995000", res.ReceivedAmount)
	}
	if res.IdempotencyKey != "idem-1" {
		t.Errorf("IdempotencyKey = %q, want idem-1", res.IdempotencyKey)
	}
	if args := recordedArgs(t, argsFile); !strings.HasPrefix(args, "simulate ") {
		t.Errorf("dry run must use the simulate subcommand: %s", args)
	}
}

func TestSimulate(t *testing.T) {
	out := `{"success":true,"expected_out":"995000","compute_units_used":180000}`
	binary, argsFile := fakeExecutor(t, out, 0)
	r := NewRunner(binary, "http://rpc.test", "", "simple")

	sim, err := r.Simulate(context.Background(), tradeParams().QuoteParams)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if !sim.Success || sim.ExpectedOut != "995000" || sim.ComputeUnits != 180000 {
		t.Errorf("unexpected result: %+v", sim)
	}

	args := recordedArgs(t, argsFile)
	if strings.Contains(args, "--wallet") {
		t.Errorf("simulate must not pass a wallet: %s", args)
	}
}

func TestRunContextCancellation(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "exec")
	// exec so the kill signal reaches the sleeper, not just the shell.
	script := "#!/bin/sh\nexec sleep 10\n"
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	r := NewRunner(binary, "http://rpc.test", "", "simple")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := r.Swap(ctx, tradeParams())
	if err == nil {
		t.Fatal("expected context error")
	}
	if time.Since(start) > 2*time.Second {
		t.Error("cancellation must kill the child, not wait it out")
	}
}

func TestWalletOverride(t *testing.T) {
	out := `{"success":true}`
	binary, argsFile := fakeExecutor(t, out, 0)
	r := NewRunner(binary, "http://rpc.test", "/default/wallet.json", "simple")

	params := tradeParams()
	params.Wallet = "/override/wallet.json"
	if _, err := r.Swap(context.Background(), params); err != nil {
		t.Fatal(err)
	}
	if args := recordedArgs(t, argsFile); !strings.Contains(args, "--wallet /override/wallet.json") {
		t.Errorf("per-trade wallet should win: %s", args)
	}
}
