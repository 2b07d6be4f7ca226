package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/hxuan190/swap-router/internal/domain"
)

const scoreTolerance = 1e-9

// TestScoreQuotesEmptyBatch verifies the empty and nil batch contracts.
func TestScoreQuotesEmptyBatch(t *testing.T) {
	if got := ScoreQuotes(nil, DefaultWeights()); len(got) != 0 {
		t.Errorf("nil batch: expected empty result, got %d entries", len(got))
	}
	if got := ScoreQuotes([]*domain.Quote{}, DefaultWeights()); len(got) != 0 {
		t.Errorf("empty batch: expected empty result, got %d entries", len(got))
	}
	if best := BestQuote(nil, DefaultWeights()); best != nil {
		t.Errorf("nil batch: expected nil best, got %+v", best)
	}
}

// TestScoreQuotesSingleQuoteTotal hand-computes the total for one quote where
// every optional factor is missing: output is the batch max (1.0 * 0.30),
// impact zero (1.0 * 0.15), fees/latency/compute neutral (0.5 each), and
// confidence, hops and liquidity at their best values.
func TestScoreQuotesSingleQuoteTotal(t *testing.T) {
	q := &domain.Quote{
		Venue:          "alpha",
		ExpectedOut:    "1000000",
		PriceImpactPct: 0,
		Confidence:     1.0,
		Hops:           1,
		LiquidityScore: 1.0,
	}

	scores := ScoreQuotes([]*domain.Quote{q}, DefaultWeights())
	if len(scores) != 1 {
		t.Fatalf("expected 1 score, got %d", len(scores))
	}

	// 0.30 + 0.15 + 0.05 + 0.05 + 0.15 + 0.05 + 0.025 + 0.10
	want := 0.875
	if math.Abs(scores[0].Total-want) > scoreTolerance {
		t.Errorf("total = %f, want %f (breakdown %+v)", scores[0].Total, want, scores[0].Breakdown)
	}
}

// TestScoreQuotesThreeVenueExample hand-computes the full breakdown for a
// realistic three-venue batch. Venue b wins on cost factors despite the
// smaller output; venue c pays for its impact and missing optional fields.
func TestScoreQuotesThreeVenueExample(t *testing.T) {
	a := &domain.Quote{Venue: "a", ExpectedOut: "1000000", PriceImpactPct: 0.1, Fee: 1000, Latency: 100 * time.Millisecond, Confidence: 0.9, Hops: 1, ComputeUnits: 200_000, LiquidityScore: 0.8}
	b := &domain.Quote{Venue: "b", ExpectedOut: "990000", PriceImpactPct: 0.05, Fee: 2000, Latency: 50 * time.Millisecond, Confidence: 0.95, Hops: 2, ComputeUnits: 100_000, LiquidityScore: 0.9}
	c := &domain.Quote{Venue: "c", ExpectedOut: "1010000", PriceImpactPct: 0.5, Confidence: 0.7, Hops: 3, LiquidityScore: 0.6}

	scores := ScoreQuotes([]*domain.Quote{a, b, c}, DefaultWeights())
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}

	// Baselines: maxOut 1010000, minFees 1000, minLatency 50ms.
	// a: 0.30*(1000000/1010000) + 0.15*0.999 + 0.10*1 + 0.10*0
	//    + 0.15*0.9 + 0.05*1 + 0.05*0.5 + 0.10*0.8
	// b: 0.30*(990000/1010000) + 0.15*0.9995 + 0.10*0 + 0.10*1
	//    + 0.15*0.95 + 0.05*0.75 + 0.05*0.75 + 0.10*0.9
	// c: 0.30*1 + 0.15*0.995 + 0.10*0.5 + 0.10*0.5
	//    + 0.15*0.7 + 0.05*0.5 + 0.05*0.5 + 0.10*0.6
	want := []struct {
		venue string
		total float64
	}{
		{"b", 0.8514844},
		{"a", 0.8368797},
		{"c", 0.76425},
	}
	for i, w := range want {
		if scores[i].Quote.Venue != w.venue {
			t.Fatalf("rank %d = %s, want %s (totals %v)", i, scores[i].Quote.Venue, w.venue, scores)
		}
		if math.Abs(scores[i].Total-w.total) > 1e-6 {
			t.Errorf("%s total = %f, want %f (breakdown %+v)", w.venue, scores[i].Total, w.total, scores[i].Breakdown)
		}
	}
}

// TestScoreQuotesOutputDominates verifies that with default weights and all
// other factors equal, the quote with the larger output ranks first.
func TestScoreQuotesOutputDominates(t *testing.T) {
	lo := &domain.Quote{Venue: "lo", ExpectedOut: "900000", Confidence: 0.9, Hops: 1, LiquidityScore: 0.8}
	hi := &domain.Quote{Venue: "hi", ExpectedOut: "1000000", Confidence: 0.9, Hops: 1, LiquidityScore: 0.8}

	scores := ScoreQuotes([]*domain.Quote{lo, hi}, DefaultWeights())
	if scores[0].Quote.Venue != "hi" {
		t.Errorf("expected hi first, got %s (totals %f vs %f)",
			scores[0].Quote.Venue, scores[0].Total, scores[1].Total)
	}
	if best := BestQuote([]*domain.Quote{lo, hi}, DefaultWeights()); best.Venue != "hi" {
		t.Errorf("BestQuote = %s, want hi", best.Venue)
	}
}

// TestScoreQuotesStableTies verifies equal totals keep input order.
func TestScoreQuotesStableTies(t *testing.T) {
	mk := func(venue string) *domain.Quote {
		return &domain.Quote{Venue: venue, ExpectedOut: "500", Confidence: 0.7, Hops: 2, LiquidityScore: 0.5}
	}
	scores := ScoreQuotes([]*domain.Quote{mk("first"), mk("second"), mk("third")}, DefaultWeights())
	order := []string{scores[0].Quote.Venue, scores[1].Quote.Venue, scores[2].Quote.Venue}
	want := []string{"first", "second", "third"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("tie order = %v, want %v", order, want)
		}
	}
}

// TestScoreQuotesBounds verifies every weighted contribution stays within
// [-|w|, |w|] even for hostile inputs.
func TestScoreQuotesBounds(t *testing.T) {
	quotes := []*domain.Quote{
		{Venue: "hostile", ExpectedOut: "not-a-number", PriceImpactPct: 500, Confidence: 7, Hops: 99, ComputeUnits: math.MaxUint32, LiquidityScore: -3, Fee: math.MaxUint64, Latency: time.Hour},
		{Venue: "normal", ExpectedOut: "1000", PriceImpactPct: 0.1, Confidence: 0.9, Hops: 1, LiquidityScore: 0.9, Fee: 5000, Latency: 80 * time.Millisecond},
	}
	w := DefaultWeights()
	for _, s := range ScoreQuotes(quotes, w) {
		checks := []struct {
			name   string
			got    float64
			weight float64
		}{
			{"expectedOut", s.Breakdown.ExpectedOut, w.ExpectedOut},
			{"priceImpact", s.Breakdown.PriceImpact, w.PriceImpact},
			{"fees", s.Breakdown.Fees, w.Fees},
			{"latency", s.Breakdown.Latency, w.Latency},
			{"confidence", s.Breakdown.Confidence, w.Confidence},
			{"hops", s.Breakdown.Hops, w.Hops},
			{"computeUnits", s.Breakdown.ComputeUnits, w.ComputeUnits},
			{"liquidity", s.Breakdown.Liquidity, w.Liquidity},
		}
		for _, c := range checks {
			if math.Abs(c.got) > math.Abs(c.weight)+scoreTolerance {
				t.Errorf("%s/%s contribution %f exceeds |weight| %f", s.Quote.Venue, c.name, c.got, c.weight)
			}
		}
	}
}

// TestNormAgainstMin tests the missing-field and cheapest-reporter semantics.
func TestNormAgainstMin(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		expected float64
	}{
		{"missing value is neutral", 0, 100, 0.5},
		{"no batch baseline is neutral", 50, 0, 0.5},
		{"cheapest reporter scores 1", 100, 100, 1.0},
		{"50% over minimum", 150, 100, 0.5},
		{"double the minimum floors at 0", 200, 100, 0},
		{"far above minimum clamps at 0", 1000, 100, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normAgainstMin(tt.value, tt.min); math.Abs(got-tt.expected) > scoreTolerance {
				t.Errorf("normAgainstMin(%f, %f) = %f, want %f", tt.value, tt.min, got, tt.expected)
			}
		})
	}
}

// TestNormHops tests the direct-route and multi-hop decay.
func TestNormHops(t *testing.T) {
	tests := []struct {
		hops     int
		expected float64
	}{
		{0, 1.0}, // treated as direct
		{1, 1.0},
		{2, 0.75},
		{3, 0.5},
		{5, 0},
		{10, 0},
	}
	for _, tt := range tests {
		if got := normHops(tt.hops); math.Abs(got-tt.expected) > scoreTolerance {
			t.Errorf("normHops(%d) = %f, want %f", tt.hops, got, tt.expected)
		}
	}
}

// TestNormPriceImpact tests the linear impact penalty and its clamps.
func TestNormPriceImpact(t *testing.T) {
	tests := []struct {
		impactPct float64
		expected  float64
	}{
		{0, 1.0},
		{1, 0.99},
		{50, 0.5},
		{100, 0},
		{250, 0},
		{-5, 1.0}, // negative impact clamps to perfect
	}
	for _, tt := range tests {
		q := &domain.Quote{PriceImpactPct: tt.impactPct}
		if got := normPriceImpact(q); math.Abs(got-tt.expected) > scoreTolerance {
			t.Errorf("normPriceImpact(%f) = %f, want %f", tt.impactPct, got, tt.expected)
		}
	}
}

// TestNormComputeUnits tests the fixed-ceiling normalization.
func TestNormComputeUnits(t *testing.T) {
	tests := []struct {
		cu       uint32
		expected float64
	}{
		{0, 0.5}, // missing
		{100_000, 0.75},
		{200_000, 0.5},
		{400_000, 0},
		{1_000_000, 0},
	}
	for _, tt := range tests {
		if got := normComputeUnits(tt.cu); math.Abs(got-tt.expected) > scoreTolerance {
			t.Errorf("normComputeUnits(%d) = %f, want %f", tt.cu, got, tt.expected)
		}
	}
}

// TestParseAmount tests the decimal-string reader used for ranking.
func TestParseAmount(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
	}{
		{"1000000000", 1e9},
		{"0", 0},
		{"", 0},
		{"garbage", 0},
		{"-5", 0},
	}
	for _, tt := range tests {
		if got := parseAmount(tt.in); got != tt.expected {
			t.Errorf("parseAmount(%q) = %f, want %f", tt.in, got, tt.expected)
		}
	}
}
