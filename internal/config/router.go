package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/hxuan190/swap-router/internal/common"
	"github.com/hxuan190/swap-router/internal/services/scoring"
)

// RouterConfig controls the aggregation and execution behavior of the router.
// All values are fixed at construction time; nothing re-reads the environment
// after Load.
type RouterConfig struct {
	// DefaultVenue is the trusted adapter used by the sequential path first
	// and by the fallback path exclusively.
	DefaultVenue string

	// QuoteTimeout bounds each adapter's quote call during fan-out.
	QuoteTimeout time.Duration

	// FallbackTimeoutFactor multiplies QuoteTimeout for the single-venue
	// fallback call. Default: 2.
	FallbackTimeoutFactor int

	// ParallelQuotes selects concurrent fan-out (default) over sequential
	// registration-order quoting.
	ParallelQuotes bool

	// MaxRetries is the total number of trade attempts per call.
	MaxRetries int

	// RetryBaseDelay is multiplied by the attempt number between attempts
	// (linear backoff).
	RetryBaseDelay time.Duration

	// Quality filter applied before scoring.
	MaxPriceImpactPct float64
	MinConfidence     float64

	// IdempotencyTTL enables the cached-executor decorator when > 0.
	IdempotencyTTL time.Duration

	// Trade journal persistence.
	PersistenceEnabled bool
	DBPath             string

	Weights scoring.ScoringWeights
}

func (c *RouterConfig) Load() error {
	c.DefaultVenue = common.GetEnvOrDefault("ROUTER_DEFAULT_VENUE", "jupiter")
	c.QuoteTimeout = common.GetEnvOrDefaultDuration("ROUTER_QUOTE_TIMEOUT", 8*time.Second)
	c.FallbackTimeoutFactor = common.GetEnvOrDefaultInt("ROUTER_FALLBACK_TIMEOUT_FACTOR", 2)
	c.ParallelQuotes = common.GetEnvOrDefaultBool("ROUTER_PARALLEL_QUOTES", true)
	c.MaxRetries = common.GetEnvOrDefaultInt("ROUTER_MAX_RETRIES", 3)
	c.RetryBaseDelay = common.GetEnvOrDefaultDuration("ROUTER_RETRY_BASE_DELAY", 500*time.Millisecond)
	c.MaxPriceImpactPct = common.GetEnvOrDefaultFloat("ROUTER_MAX_PRICE_IMPACT_PCT", 10.0)
	c.MinConfidence = common.GetEnvOrDefaultFloat("ROUTER_MIN_CONFIDENCE", 0.5)
	c.IdempotencyTTL = common.GetEnvOrDefaultDuration("ROUTER_IDEMPOTENCY_TTL", time.Minute)
	c.PersistenceEnabled = common.GetEnvOrDefaultBool("ROUTER_PERSISTENCE_ENABLED", true)
	c.DBPath = common.GetEnvOrDefault("ROUTER_DB_PATH", "./data/swap-router.db")

	defaults := scoring.DefaultWeights()
	c.Weights = scoring.ScoringWeights{
		ExpectedOut:  common.GetEnvOrDefaultFloat("SCORING_WEIGHT_EXPECTED_OUT", defaults.ExpectedOut),
		PriceImpact:  common.GetEnvOrDefaultFloat("SCORING_WEIGHT_PRICE_IMPACT", defaults.PriceImpact),
		Fees:         common.GetEnvOrDefaultFloat("SCORING_WEIGHT_FEES", defaults.Fees),
		Latency:      common.GetEnvOrDefaultFloat("SCORING_WEIGHT_LATENCY", defaults.Latency),
		Confidence:   common.GetEnvOrDefaultFloat("SCORING_WEIGHT_CONFIDENCE", defaults.Confidence),
		Hops:         common.GetEnvOrDefaultFloat("SCORING_WEIGHT_HOPS", defaults.Hops),
		ComputeUnits: common.GetEnvOrDefaultFloat("SCORING_WEIGHT_COMPUTE_UNITS", defaults.ComputeUnits),
		Liquidity:    common.GetEnvOrDefaultFloat("SCORING_WEIGHT_LIQUIDITY", defaults.Liquidity),
	}

	return c.Validate()
}

func (c *RouterConfig) Validate() error {
	if c.DefaultVenue == "" {
		return errors.New("router config: default venue is required")
	}
	if c.QuoteTimeout <= 0 {
		return errors.New("router config: quote timeout must be positive")
	}
	if c.FallbackTimeoutFactor < 1 {
		return fmt.Errorf("router config: fallback timeout factor %d must be >= 1", c.FallbackTimeoutFactor)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("router config: max retries %d must be >= 1", c.MaxRetries)
	}
	if c.MaxPriceImpactPct < 0 || c.MinConfidence < 0 || c.MinConfidence > 1 {
		return errors.New("router config: invalid quality filter thresholds")
	}
	return nil
}
