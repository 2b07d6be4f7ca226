package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Aggregation metrics
	QuoteRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swaprouter_quote_requests_total",
			Help: "Total number of aggregated quote requests",
		},
		[]string{"status"},
	)

	AdapterQuotes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swaprouter_adapter_quotes_total",
			Help: "Per-adapter quote outcomes during fan-out",
		},
		[]string{"venue", "status"},
	)

	AdapterQuoteDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swaprouter_adapter_quote_duration_seconds",
			Help:    "Per-adapter quote call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"venue"},
	)

	AggregationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swaprouter_aggregation_duration_seconds",
		Help:    "End-to-end quote aggregation duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	FallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swaprouter_fallback_total",
		Help: "Total number of aggregations served by the fallback path",
	})

	QuotesPerBatch = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swaprouter_quotes_per_batch",
		Help:    "Usable quotes collected per aggregation call",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	})

	PriceImpact = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swaprouter_price_impact_pct",
			Help:    "Price impact of collected quotes in percent",
			Buckets: []float64{0, 0.1, 0.5, 1, 3, 5, 10, 50, 100},
		},
		[]string{"venue"},
	)

	// Trade metrics
	TradeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swaprouter_trade_requests_total",
			Help: "Total number of trade requests",
		},
		[]string{"venue", "status"},
	)

	TradeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swaprouter_trade_duration_seconds",
			Help:    "Trade execution duration in seconds, retries included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"venue"},
	)

	TradeAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swaprouter_trade_attempts",
		Help:    "Attempts used per trade call",
		Buckets: []float64{1, 2, 3, 4, 5},
	})

	IdempotencyCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "swaprouter_idempotency_cache_hits_total",
		Help: "Trade calls answered from the idempotency cache",
	})

	// Simulation metrics
	SimulationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swaprouter_simulation_requests_total",
			Help: "Per-venue simulation outcomes",
		},
		[]string{"venue", "status"},
	)

	// Venue health
	VenueHealthy = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "swaprouter_venue_healthy",
			Help: "1 when the venue's last health probe succeeded",
		},
		[]string{"venue"},
	)

	// Journal metrics
	JournalWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swaprouter_journal_writes_total",
			Help: "Trade journal write outcomes",
		},
		[]string{"status"},
	)

	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swaprouter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "swaprouter_http_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
