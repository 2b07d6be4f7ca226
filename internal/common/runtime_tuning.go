package common

import (
	"os"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog/log"
)

// Runtime profiles for different server configurations
const (
	// Small server: 2 vCPU, 4GB RAM (test/dev environment)
	SmallServerGOGC     = 400
	SmallServerMemLimit = 2.5 * 1024 * 1024 * 1024 // 2.5GB
	SmallServerMaxProcs = 1                        // Leave 1 core for OS

	// Large server: 4+ vCPU, 8GB+ RAM
	LargeServerGOGC     = 800
	LargeServerMemLimit = 8 * 1024 * 1024 * 1024 // 8GB
)

// detectServerProfile returns GC and scheduler settings based on CPU count.
// RAM detection would require cgo or /proc parsing, so CPU count is the proxy.
func detectServerProfile() (gogc int, memLimit int64, maxProcs int) {
	totalCPU := runtime.NumCPU()
	if totalCPU <= 2 {
		return SmallServerGOGC, int64(SmallServerMemLimit), SmallServerMaxProcs
	}
	return LargeServerGOGC, int64(LargeServerMemLimit), totalCPU / 2
}

// InitRuntime configures the Go runtime for the quote fan-out workload: many
// short-lived goroutines per request and latency bounded by the slowest venue.
// A high GOGC keeps GC off the request path; GOMEMLIMIT is the safety net.
// Override with the GOGC, GOMAXPROCS and GOMEMLIMIT environment variables.
func InitRuntime() {
	defaultGOGC, defaultMemLimit, defaultMaxProcs := detectServerProfile()

	if gcPercent := os.Getenv("GOGC"); gcPercent == "" {
		debug.SetGCPercent(defaultGOGC)
		log.Info().Int("GOGC", defaultGOGC).Msg("[runtime] set GOGC")
	}

	if maxProcs := os.Getenv("GOMAXPROCS"); maxProcs == "" {
		if defaultMaxProcs < 1 {
			defaultMaxProcs = 1
		}
		runtime.GOMAXPROCS(defaultMaxProcs)
		log.Info().
			Int("GOMAXPROCS", defaultMaxProcs).
			Int("total_cpu", runtime.NumCPU()).
			Msg("[runtime] set GOMAXPROCS")
	}

	if memLimit := os.Getenv("GOMEMLIMIT"); memLimit == "" {
		debug.SetMemoryLimit(defaultMemLimit)
		log.Info().
			Int64("GOMEMLIMIT_bytes", defaultMemLimit).
			Msg("[runtime] set memory limit (safety net for high GOGC)")
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	log.Info().
		Int("num_cpu", runtime.NumCPU()).
		Int("gomaxprocs", runtime.GOMAXPROCS(0)).
		Uint64("heap_sys_mb", memStats.HeapSys/1024/1024).
		Str("go_version", runtime.Version()).
		Msg("[runtime] current runtime settings")
}
