package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Match Run Metrics
var (
	MatchRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMatchRunsTotal,
			Help: HelpTextMatchRunsTotal,
		},
	)

	MatchRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameMatchRunDuration,
			Help:    HelpTextMatchRunDuration,
			Buckets: MatchRunBuckets,
		},
	)

	MinifigsChecked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMinifigsChecked,
			Help: HelpTextMinifigsChecked,
		},
	)

	CompleteBuildsFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCompleteBuildsFound,
			Help: HelpTextCompleteBuildsFound,
		},
	)

	PartialBuildsFound = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePartialBuildsFound,
			Help: HelpTextPartialBuildsFound,
		},
	)

	CopiesAllocated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCopiesAllocated,
			Help: HelpTextCopiesAllocated,
		},
	)
)

// Catalog Metrics
var (
	CatalogLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogLookups,
			Help: HelpTextCatalogLookups,
		},
		[]string{LabelKind, LabelSource},
	)

	CatalogLookupErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCatalogLookupErrors,
			Help: HelpTextCatalogLookupErrors,
		},
		[]string{LabelKind},
	)

	CatalogRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogRefreshes,
			Help: HelpTextCatalogRefreshes,
		},
	)

	RemoteFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameRemoteFetchDuration,
			Help:    HelpTextRemoteFetchDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelKind},
	)
)
