package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/clinic-readiness-api/internal/models"
)

// MetricsService owns the Prometheus registry for HTTP, cache and engine events.
// All methods are safe on a nil receiver.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheLookups    *prometheus.CounterVec

	assessmentsFinalized prometheus.Counter
	goalsGenerated       *prometheus.CounterVec
	sessionsRecorded     prometheus.Counter
	goalsMastered        prometheus.Counter
	behaviorLogs         prometheus.Counter
	readinessScore       prometheus.Histogram
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	m := &MetricsService{
		registry: registry,
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		cacheLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_latency_seconds",
			Help:    "Latency for cache lookups",
			Buckets: prometheus.DefBuckets,
		}),
		cacheWrite: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cache_write_seconds",
			Help:    "Latency for cache set operations",
			Buckets: prometheus.DefBuckets,
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by result",
		}, []string{"result"}),
		assessmentsFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "assessments_finalized_total",
			Help: "Assessments moved from draft to final",
		}),
		goalsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "goals_generated_total",
			Help: "Goals created by the generator",
		}, []string{"domain"}),
		sessionsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goal_sessions_recorded_total",
			Help: "Trial sessions appended to goals",
		}),
		goalsMastered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "goals_mastered_total",
			Help: "Automatic mastery promotions",
		}),
		behaviorLogs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "behavior_logs_total",
			Help: "Behavior log entries recorded",
		}),
		readinessScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "readiness_point_score",
			Help:    "Scores of appended readiness points",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),
	}

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(
		m.requestDuration, m.requestTotal, m.cacheLatency, m.cacheWrite, m.cacheLookups,
		m.assessmentsFinalized, m.goalsGenerated, m.sessionsRecorded, m.goalsMastered,
		m.behaviorLogs, m.readinessScore, goroutines,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records a cache lookup result.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordFinalize counts a finalized assessment and the goals it generated.
func (m *MetricsService) RecordFinalize(goals []models.Goal, point models.ReadinessPoint) {
	if m == nil {
		return
	}
	m.assessmentsFinalized.Inc()
	for _, g := range goals {
		m.goalsGenerated.WithLabelValues(string(g.Domain)).Inc()
	}
	m.readinessScore.Observe(float64(point.Score))
}

// RecordSession counts a recorded session and an optional promotion.
func (m *MetricsService) RecordSession(promoted bool) {
	if m == nil {
		return
	}
	m.sessionsRecorded.Inc()
	if promoted {
		m.goalsMastered.Inc()
	}
}

// RecordBehaviorLog counts a behavior entry and its readiness point.
func (m *MetricsService) RecordBehaviorLog(point models.ReadinessPoint) {
	if m == nil {
		return
	}
	m.behaviorLogs.Inc()
	m.readinessScore.Observe(float64(point.Score))
}
