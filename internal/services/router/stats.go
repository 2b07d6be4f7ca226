package router

import (
	"sync"
	"time"

	"github.com/hxuan190/swap-router/internal/domain"
)

// statsTracker is the only router state carried between calls. Updates run
// in the single-threaded continuation after fan-out settles, but the router
// itself may serve overlapping callers, hence the mutex.
type statsTracker struct {
	mu             sync.Mutex
	totalQuotes    uint64
	totalTrades    uint64
	successRate    float64
	averageLatency float64 // ms
	dexUsage       map[string]uint64
	lastUpdated    time.Time
}

func newStatsTracker() *statsTracker {
	return &statsTracker{dexUsage: make(map[string]uint64)}
}

// recordQuote counts one aggregation call and folds its latency into the
// decaying average: (old+new)/2, seeded by the first observation.
func (s *statsTracker) recordQuote(elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalQuotes++
	s.foldLatency(elapsed)
	s.lastUpdated = time.Now()
}

// recordTrade counts one completed trade attempt sequence (not one retry)
// and recomputes the running success rate so that after N trades with K
// successes the rate is exactly K/N.
func (s *statsTracker) recordTrade(venue string, success bool, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalTrades++
	outcome := 0.0
	if success {
		outcome = 1.0
	}
	n := float64(s.totalTrades)
	s.successRate = ((n-1)*s.successRate + outcome) / n
	if venue != "" {
		s.dexUsage[venue]++
	}
	s.foldLatency(elapsed)
	s.lastUpdated = time.Now()
}

func (s *statsTracker) foldLatency(elapsed time.Duration) {
	ms := float64(elapsed.Milliseconds())
	if s.averageLatency == 0 {
		s.averageLatency = ms
		return
	}
	s.averageLatency = (s.averageLatency + ms) / 2
}

// snapshot returns a copy safe for external readers.
func (s *statsTracker) snapshot() domain.RouterStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	usage := make(map[string]uint64, len(s.dexUsage))
	for venue, n := range s.dexUsage {
		usage[venue] = n
	}
	return domain.RouterStats{
		TotalQuotes:    s.totalQuotes,
		TotalTrades:    s.totalTrades,
		SuccessRate:    s.successRate,
		AverageLatency: s.averageLatency,
		DexUsage:       usage,
		LastUpdated:    s.lastUpdated.Unix(),
	}
}
