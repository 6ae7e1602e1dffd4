package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersScheduled *prometheus.CounterVec
	TransfersDeleted   prometheus.Counter
	TransfersCleared   prometheus.Counter
	TransferAmount     prometheus.Histogram
	TransferFee        prometheus.Histogram
	ScheduleDuration   prometheus.Histogram
	SchedulingErrors   *prometheus.CounterVec

	// Fee metrics
	FeeQuotes *prometheus.CounterVec

	// Cache metrics
	CacheRequests *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished *prometheus.CounterVec
	OutboxFailures  *prometheus.CounterVec

	// Database metrics
	DBErrors *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them with reg.
// A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		// Transfer metrics
		TransfersScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goscheduler_transfers_scheduled_total",
				Help: "Total number of transfers scheduled by fee policy",
			},
			[]string{"fee_policy"},
		),
		TransfersDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "goscheduler_transfers_deleted_total",
			Help: "Total number of scheduled transfers deleted",
		}),
		TransfersCleared: factory.NewCounter(prometheus.CounterOpts{
			Name: "goscheduler_transfers_cleared_total",
			Help: "Total number of clear-all operations",
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goscheduler_transfer_amount",
			Help:    "Scheduled transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferFee: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goscheduler_transfer_fee",
			Help:    "Fees charged on scheduled transfers",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 1000, 10000},
		}),
		ScheduleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "goscheduler_schedule_duration_seconds",
			Help:    "Duration of schedule operations",
			Buckets: prometheus.DefBuckets,
		}),
		SchedulingErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goscheduler_scheduling_errors_total",
				Help: "Total number of rejected schedule requests by error code",
			},
			[]string{"code"},
		),

		// Fee metrics
		FeeQuotes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goscheduler_fee_quotes_total",
				Help: "Total fee quotes by fee policy",
			},
			[]string{"fee_policy"},
		),

		// Cache metrics
		CacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goscheduler_cache_requests_total",
				Help: "Transfer cache lookups by result",
			},
			[]string{"result"},
		),

		// Outbox metrics
		OutboxPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goscheduler_outbox_published_total",
				Help: "Outbox events published by event type",
			},
			[]string{"event_type"},
		),
		OutboxFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goscheduler_outbox_failures_total",
				Help: "Outbox events that failed to publish by event type",
			},
			[]string{"event_type"},
		),

		// Database metrics
		DBErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goscheduler_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "goscheduler_rate_limit_hits_total",
			Help: "Requests rejected by the rate limiter",
		}),
	}
}
