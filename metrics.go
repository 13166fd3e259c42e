package moviegraph

import (
	"sync"
	"time"

	"github.com/jensneuse/graphql-go-tools/pkg/graphql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metrics = new(Metrics)

func init() { // nolint:gochecknoinits
	metrics.once.Do(func() {
		const ns, sub = "caddy", "http_moviegraph"
		operationLabels := []string{"operation_type", "operation_name"}
		metrics.operationInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "operations_in_flight",
			Help:      "Number of graphql operations currently handled by this server.",
		}, operationLabels)

		metrics.operationCount = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "operation_total",
			Help:      "Counter of graphql operations served.",
		}, operationLabels)

		metrics.operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "operation_duration",
			Help:      "Histogram of GraphQL operations execution duration.",
			Buckets:   prometheus.DefBuckets,
		}, operationLabels)

		cacheLabels := []string{"operation_name"}
		metrics.cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "cache_hits_total",
			Help:      "Counter of graphql query operations served from cached results.",
		}, cacheLabels)

		metrics.cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "cache_misses_total",
			Help:      "Counter of graphql query operations executed and cached.",
		}, cacheLabels)

		metrics.cachePasses = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Subsystem: sub,
			Name:      "cache_passes_total",
			Help:      "Counter of graphql query operations not matching any caching rule.",
		}, cacheLabels)
	})
}

type Metrics struct {
	once              sync.Once
	operationInFlight *prometheus.GaugeVec
	operationCount    *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	cacheHits         *prometheus.CounterVec
	cacheMisses       *prometheus.CounterVec
	cachePasses       *prometheus.CounterVec
}

type requestMetrics interface {
	addMetricsBeginRequest(*graphql.Request)
	addMetricsEndRequest(*graphql.Request, time.Duration)
}

type cacheMetrics interface {
	addMetricsCacheHit(*graphql.Request)
	addMetricsCacheMiss(*graphql.Request)
	addMetricsCachePass(*graphql.Request)
}

func (h *Handler) addMetricsBeginRequest(request *graphql.Request) {
	labels := metricsOperationLabels(request)
	h.metrics.operationCount.With(labels).Inc()
	h.metrics.operationInFlight.With(labels).Inc()
}

func (h *Handler) addMetricsEndRequest(request *graphql.Request, d time.Duration) {
	labels := metricsOperationLabels(request)
	h.metrics.operationInFlight.With(labels).Dec()
	h.metrics.operationDuration.With(labels).Observe(d.Seconds())
}

func (h *Handler) addMetricsCacheHit(request *graphql.Request) {
	h.metrics.cacheHits.With(metricsCacheLabels(request)).Inc()
}

func (h *Handler) addMetricsCacheMiss(request *graphql.Request) {
	h.metrics.cacheMisses.With(metricsCacheLabels(request)).Inc()
}

func (h *Handler) addMetricsCachePass(request *graphql.Request) {
	h.metrics.cachePasses.With(metricsCacheLabels(request)).Inc()
}

// Label helpers expect normalized requests, the handler normalizes every request before counting it.
func metricsCacheLabels(request *graphql.Request) prometheus.Labels {
	return prometheus.Labels{
		"operation_name": request.OperationName,
	}
}

func metricsOperationLabels(request *graphql.Request) prometheus.Labels {
	labels := metricsCacheLabels(request)
	operationType, _ := request.OperationType()

	switch operationType {
	case graphql.OperationTypeQuery:
		labels["operation_type"] = "query"
	case graphql.OperationTypeMutation:
		labels["operation_type"] = "mutation"
	default:
		labels["operation_type"] = "unknown"
	}

	return labels
}

// Interface guards
var (
	_ requestMetrics = (*Handler)(nil)
	_ cacheMetrics   = (*Handler)(nil)
)
