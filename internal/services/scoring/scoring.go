// Package scoring normalizes heterogeneous venue quotes into comparable
// scores. It is pure and stateless: scores are only meaningful within one
// aggregation batch because normalization is relative to the batch min/max.
package scoring

import (
	"sort"
	"strconv"

	"github.com/hxuan190/swap-router/internal/domain"
)

// computeUnitCeiling is the fixed resource ceiling compute cost is normalized
// against. Matches the execution layer's simulation CU limit.
const computeUnitCeiling = 400_000

// neutralScore is the contribution used when a venue does not report an
// optional factor (fees, latency, compute units).
const neutralScore = 0.5

// ScoringWeights carries one signed weight per factor. By convention cost
// factors (price impact, fees, latency, hops, compute units) are negative;
// scoring applies |weight| to a normalized goodness term, so the sign is
// documentation rather than arithmetic.
type ScoringWeights struct {
	ExpectedOut  float64 `json:"expectedOut"`
	PriceImpact  float64 `json:"priceImpact"`
	Fees         float64 `json:"fees"`
	Latency      float64 `json:"latency"`
	Confidence   float64 `json:"confidence"`
	Hops         float64 `json:"hops"`
	ComputeUnits float64 `json:"computeUnits"`
	Liquidity    float64 `json:"liquidity"`
}

// DefaultWeights favors output amount first, then confidence and liquidity.
func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		ExpectedOut:  0.30,
		PriceImpact:  -0.15,
		Fees:         -0.10,
		Latency:      -0.10,
		Confidence:   0.15,
		Hops:         -0.05,
		ComputeUnits: -0.05,
		Liquidity:    0.10,
	}
}

// FactorScores holds the weighted per-factor contributions of one quote.
type FactorScores struct {
	ExpectedOut  float64 `json:"expectedOut"`
	PriceImpact  float64 `json:"priceImpact"`
	Fees         float64 `json:"fees"`
	Latency      float64 `json:"latency"`
	Confidence   float64 `json:"confidence"`
	Hops         float64 `json:"hops"`
	ComputeUnits float64 `json:"computeUnits"`
	Liquidity    float64 `json:"liquidity"`
}

// QuoteScore pairs a quote with its contributions and total. Never persisted,
// recomputed per aggregation call.
type QuoteScore struct {
	Quote     *domain.Quote `json:"quote"`
	Breakdown FactorScores  `json:"breakdown"`
	Total     float64       `json:"total"`
}

// batchBaselines are the per-batch reference points normalization is
// computed against.
type batchBaselines struct {
	maxOut     float64
	minLatency float64 // ms, 0 when no quote reports latency
	minFees    float64 // 0 when no quote reports fees
}

func computeBaselines(quotes []*domain.Quote) batchBaselines {
	var b batchBaselines
	for _, q := range quotes {
		if out := parseAmount(q.ExpectedOut); out > b.maxOut {
			b.maxOut = out
		}
		if q.Latency > 0 {
			ms := float64(q.Latency.Milliseconds())
			if ms < 1 {
				ms = 1
			}
			if b.minLatency == 0 || ms < b.minLatency {
				b.minLatency = ms
			}
		}
		if q.Fee > 0 {
			fee := float64(q.Fee)
			if b.minFees == 0 || fee < b.minFees {
				b.minFees = fee
			}
		}
	}
	return b
}

// ScoreQuotes computes the ranked scores for a batch, best first. The sort is
// stable so ties keep input order; there is no secondary tie-break criterion.
// An empty or nil batch yields an empty slice.
func ScoreQuotes(quotes []*domain.Quote, weights ScoringWeights) []QuoteScore {
	if len(quotes) == 0 {
		return []QuoteScore{}
	}

	base := computeBaselines(quotes)
	scores := make([]QuoteScore, 0, len(quotes))
	for _, q := range quotes {
		scores = append(scores, scoreOne(q, base, weights))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Total > scores[j].Total
	})
	return scores
}

// BestQuote returns the top-scoring quote, or nil for an empty batch.
func BestQuote(quotes []*domain.Quote, weights ScoringWeights) *domain.Quote {
	scores := ScoreQuotes(quotes, weights)
	if len(scores) == 0 {
		return nil
	}
	return scores[0].Quote
}

func scoreOne(q *domain.Quote, base batchBaselines, w ScoringWeights) QuoteScore {
	breakdown := FactorScores{
		ExpectedOut:  normExpectedOut(q, base) * w.ExpectedOut,
		PriceImpact:  normPriceImpact(q) * abs(w.PriceImpact),
		Fees:         normAgainstMin(float64(q.Fee), base.minFees) * abs(w.Fees),
		Latency:      normAgainstMin(latencyMs(q), base.minLatency) * abs(w.Latency),
		Confidence:   clamp01(q.Confidence) * w.Confidence,
		Hops:         normHops(q.Hops) * abs(w.Hops),
		ComputeUnits: normComputeUnits(q.ComputeUnits) * abs(w.ComputeUnits),
		Liquidity:    clamp01(q.LiquidityScore) * w.Liquidity,
	}

	total := breakdown.ExpectedOut + breakdown.PriceImpact + breakdown.Fees +
		breakdown.Latency + breakdown.Confidence + breakdown.Hops +
		breakdown.ComputeUnits + breakdown.Liquidity

	return QuoteScore{Quote: q, Breakdown: breakdown, Total: total}
}

// normExpectedOut scales output proportionally to the batch best: 1.0 for the
// highest output, value/maxOut otherwise, 1.0 when the batch has no baseline.
func normExpectedOut(q *domain.Quote, base batchBaselines) float64 {
	if base.maxOut <= 0 {
		return 1
	}
	return clamp01(parseAmount(q.ExpectedOut) / base.maxOut)
}

// normPriceImpact applies a linear penalty flooring at zero for >= 100%
// impact. Negative impact values clamp to the perfect score.
func normPriceImpact(q *domain.Quote) float64 {
	return clamp01(1 - q.PriceImpactPct/100)
}

// normAgainstMin scores a cost value against the batch minimum: the cheapest
// reporter scores 1.0 and the score decays linearly with the excess over the
// minimum. Quotes (or batches) without the field score a neutral 0.5.
func normAgainstMin(value, min float64) float64 {
	if value <= 0 || min == 0 {
		return neutralScore
	}
	return clamp01(1 - (value-min)/min)
}

// normHops gives a direct route 1.0 and a five-hop route 0.
func normHops(hops int) float64 {
	if hops < 1 {
		hops = 1
	}
	return clamp01(1 - float64(hops-1)/4)
}

func normComputeUnits(cu uint32) float64 {
	if cu == 0 {
		return neutralScore
	}
	return clamp01(1 - float64(cu)/computeUnitCeiling)
}

func latencyMs(q *domain.Quote) float64 {
	if q.Latency <= 0 {
		return 0
	}
	ms := float64(q.Latency.Milliseconds())
	if ms < 1 {
		ms = 1
	}
	return ms
}

// parseAmount reads a smallest-unit decimal string as a float for relative
// comparison. Precision loss above 2^53 is acceptable here: scoring is a
// ranking, exact amounts stay in string form on the quote itself.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
