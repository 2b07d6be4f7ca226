package router

import (
	"math"
	"testing"
	"time"
)

// TestStatsSuccessRateSequence verifies the running recomputation yields
// exactly K/N after any outcome sequence.
func TestStatsSuccessRateSequence(t *testing.T) {
	s := newStatsTracker()
	outcomes := []bool{true, false, true, true, false, true, true, true, false, true}

	successes := 0
	for _, ok := range outcomes {
		if ok {
			successes++
		}
		s.recordTrade("alpha", ok, 10*time.Millisecond)
	}

	snap := s.snapshot()
	want := float64(successes) / float64(len(outcomes))
	if math.Abs(snap.SuccessRate-want) > 1e-12 {
		t.Errorf("SuccessRate = %f, want %f", snap.SuccessRate, want)
	}
	if snap.TotalTrades != uint64(len(outcomes)) {
		t.Errorf("TotalTrades = %d, want %d", snap.TotalTrades, len(outcomes))
	}
	if snap.DexUsage["alpha"] != uint64(len(outcomes)) {
		t.Errorf("DexUsage[alpha] = %d, want %d", snap.DexUsage["alpha"], len(outcomes))
	}
}

// TestStatsLatencyFold verifies the (old+new)/2 update and its seeding.
func TestStatsLatencyFold(t *testing.T) {
	s := newStatsTracker()

	s.recordQuote(100 * time.Millisecond)
	if got := s.snapshot().AverageLatency; got != 100 {
		t.Fatalf("seed latency = %f, want 100", got)
	}

	s.recordQuote(200 * time.Millisecond)
	if got := s.snapshot().AverageLatency; got != 150 {
		t.Errorf("folded latency = %f, want 150", got)
	}

	s.recordQuote(50 * time.Millisecond)
	if got := s.snapshot().AverageLatency; got != 100 {
		t.Errorf("folded latency = %f, want 100", got)
	}
}

// TestStatsSnapshotIsCopy verifies mutations of a snapshot do not leak back.
func TestStatsSnapshotIsCopy(t *testing.T) {
	s := newStatsTracker()
	s.recordTrade("alpha", true, time.Millisecond)

	snap := s.snapshot()
	snap.DexUsage["alpha"] = 999

	if s.snapshot().DexUsage["alpha"] != 1 {
		t.Error("snapshot map must be a copy")
	}
}

// TestStatsUnknownVenueNotCounted verifies pre-flight failures (no venue
// selected) do not pollute the usage map.
func TestStatsUnknownVenueNotCounted(t *testing.T) {
	s := newStatsTracker()
	s.recordTrade("", false, time.Millisecond)

	snap := s.snapshot()
	if len(snap.DexUsage) != 0 {
		t.Errorf("DexUsage = %v, want empty", snap.DexUsage)
	}
	if snap.TotalTrades != 1 {
		t.Errorf("TotalTrades = %d, want 1", snap.TotalTrades)
	}
}
