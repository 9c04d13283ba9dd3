package metrics

import (
	"hotelbook/config"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"

	CacheEventHit  = "hit"
	CacheEventMiss = "miss"
	CacheEventSet  = "set"
	CacheEventDel  = "del"
)

// Metrics records the service's Prometheus series.
type Metrics interface {
	ObserveHTTP(route, method string, status int, dur time.Duration)
	ObserveOperation(operation, outcome string, dur time.Duration)
	ObserveCache(cache, event string)
	ObserveEvent(topic, outcome string)
	Handler() http.Handler
}

type metricsImpl struct {
	registry         *prometheus.Registry
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
	operations       *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	cacheEvents      *prometheus.CounterVec
	events           *prometheus.CounterVec
}

func New(cfg *config.Config) Metrics {
	namespace := cfg.Metrics.Namespace
	if namespace == "" {
		namespace = "hotelbook"
	}

	m := &metricsImpl{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "HTTP requests."},
			[]string{"route", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "http_request_duration_seconds",
				Help:    "HTTP request duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "booking_operations_total", Help: "Booking engine operations by outcome."},
			[]string{"operation", "outcome"},
		),
		operationLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace, Name: "booking_operation_duration_seconds",
				Help:    "Booking engine operation duration seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		cacheEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
			[]string{"cache", "event"},
		),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "published_events_total", Help: "Published lifecycle events."},
			[]string{"topic", "outcome"},
		),
	}

	m.registry.MustRegister(
		m.httpRequests,
		m.httpLatency,
		m.operations,
		m.operationLatency,
		m.cacheEvents,
		m.events,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	log.Info().Str("namespace", namespace).Msg("Metrics registry initialized")

	return m
}

func (m *metricsImpl) ObserveHTTP(route, method string, status int, dur time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func (m *metricsImpl) ObserveOperation(operation, outcome string, dur time.Duration) {
	m.operations.WithLabelValues(operation, outcome).Inc()
	m.operationLatency.WithLabelValues(operation).Observe(dur.Seconds())
}

func (m *metricsImpl) ObserveCache(cache, event string) {
	m.cacheEvents.WithLabelValues(cache, event).Inc()
}

func (m *metricsImpl) ObserveEvent(topic, outcome string) {
	m.events.WithLabelValues(topic, outcome).Inc()
}

func (m *metricsImpl) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Outcome labels an operation result; failure kinds are used when present.
func Outcome(err error, kind string) string {
	if err == nil {
		return OutcomeOK
	}

	if kind != "" {
		return kind
	}

	return OutcomeError
}
