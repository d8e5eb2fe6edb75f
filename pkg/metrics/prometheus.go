// Package metrics provides Prometheus metrics for the season simulation
// core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns every metric the simulation records.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Simulation metrics
	contestsResolved     *prometheus.CounterVec
	duplicateResolutions prometheus.Counter
	competitorsScored    prometheus.Counter
	scoreDistribution    prometheus.Histogram
	fundingIssued        prometheus.Counter
	endingsTriggered     prometheus.Counter
	careerEntries        prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "coach",
		subsystem:        "season",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      name,
			Help:      help,
		}
	}

	m.contestsResolved = prometheus.NewCounterVec(
		factory("contests_resolved_total", "Contests resolved, by stage and contest type."),
		[]string{"stage", "type"},
	)
	m.duplicateResolutions = prometheus.NewCounter(
		factory("duplicate_resolutions_total", "Contest occurrences delivered more than once and skipped."),
	)
	m.competitorsScored = prometheus.NewCounter(
		factory("competitors_scored_total", "Competitor scoring passes performed."),
	)
	m.scoreDistribution = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "contest_score_ratio",
		Help:      "Per-competitor total score as a ratio of the contest maximum.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
	})
	m.fundingIssued = prometheus.NewCounter(
		factory("funding_issued_total", "Total currency issued as contest rewards."),
	)
	m.endingsTriggered = prometheus.NewCounter(
		factory("endings_triggered_total", "Chain-failure season endings triggered."),
	)
	m.careerEntries = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "career_entries",
		Help:      "Career ledger entries recorded this season.",
	})

	m.httpRequests = prometheus.NewCounterVec(
		factory("http_requests_total", "HTTP requests, by endpoint, method and status."),
		[]string{"endpoint", "method", "status"},
	)
	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
	m.errorsByEndpoint = prometheus.NewCounterVec(
		factory("http_errors_total", "HTTP error responses, by endpoint, method and class."),
		[]string{"endpoint", "method", "class"},
	)

	if !m.enabled {
		return
	}
	m.registry.MustRegister(
		m.contestsResolved,
		m.duplicateResolutions,
		m.competitorsScored,
		m.scoreDistribution,
		m.fundingIssued,
		m.endingsTriggered,
		m.careerEntries,
		m.httpRequests,
		m.httpRequestDuration,
		m.errorsByEndpoint,
	)
}

// RecordContestResolved counts one resolved contest occurrence.
func RecordContestResolved(stage, contestType string) {
	globalManager.contestsResolved.WithLabelValues(stage, contestType).Inc()
}

// RecordDuplicateResolution counts one skipped duplicate delivery.
func RecordDuplicateResolution() {
	globalManager.duplicateResolutions.Inc()
}

// RecordCompetitorScored counts one competitor scoring pass.
func RecordCompetitorScored() {
	globalManager.competitorsScored.Inc()
}

// RecordScoreRatio observes a total score as a ratio of the contest max.
func RecordScoreRatio(ratio float64) {
	globalManager.scoreDistribution.Observe(ratio)
}

// RecordFundingIssued adds the currency amount of one funding issuance.
func RecordFundingIssued(amount int) {
	if amount > 0 {
		globalManager.fundingIssued.Add(float64(amount))
	}
}

// RecordEndingTriggered counts a chain-failure season ending.
func RecordEndingTriggered() {
	globalManager.endingsTriggered.Inc()
}

// UpdateCareerEntries sets the career ledger size gauge.
func UpdateCareerEntries(count int) {
	globalManager.careerEntries.Set(float64(count))
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

// RecordErrorByEndpoint counts one HTTP error response.
func RecordErrorByEndpoint(endpoint, method, class string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, class).Inc()
}

// GetRegistry exposes the private registry for the /healthz exposition.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
