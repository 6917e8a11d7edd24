package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Webhook intake metrics
	EventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddlehook_events_total",
			Help: "Total number of webhook events received",
		},
		[]string{"category", "status"},
	)

	SignatureFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paddlehook_signature_failures_total",
			Help: "Total number of webhook requests rejected for a bad signature",
		},
	)

	EventBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paddlehook_event_bytes_total",
			Help: "Total bytes of webhook payloads received",
		},
	)

	// Dispatch metrics
	DispatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paddlehook_dispatch_duration_seconds",
			Help:    "Duration of event dispatch in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	DispatchErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paddlehook_dispatch_errors_total",
			Help: "Total number of events whose handler reported an error",
		},
	)

	// Catalog cache metrics
	CacheRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddlehook_cache_refresh_total",
			Help: "Total number of cache refresh cycles",
		},
		[]string{"cache", "status"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "paddlehook_cache_size",
			Help: "Number of entries currently held per cache",
		},
		[]string{"cache"},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddlehook_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"path"},
	)

	// Replay metrics
	ReplayEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paddlehook_replay_events_total",
			Help: "Total number of events re-dispatched by replay runs",
		},
		[]string{"status"},
	)

	ReplayRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paddlehook_replay_runs_total",
			Help: "Total number of replay runs started",
		},
	)
)
