package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "project_tracker",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "project_tracker",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "project_tracker",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	accountsProvisioned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "project_tracker",
			Subsystem: "identity",
			Name:      "accounts_provisioned_total",
			Help:      "Total number of accounts created.",
		},
	)

	handleCollisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "project_tracker",
			Subsystem: "identity",
			Name:      "handle_collisions_total",
			Help:      "Handle candidates rejected because they were taken.",
		},
		[]string{"stage"},
	)

	tokensIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "project_tracker",
			Subsystem: "auth",
			Name:      "tokens_issued_total",
			Help:      "Total number of bearer tokens minted.",
		},
	)

	tasksSequenced = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "project_tracker",
			Subsystem: "tasks",
			Name:      "sequenced_total",
			Help:      "Total number of tasks assigned a sequence code.",
		},
	)

	sequenceConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "project_tracker",
			Subsystem: "tasks",
			Name:      "sequence_conflicts_total",
			Help:      "Sequence code inserts rejected by the uniqueness constraint.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		accountsProvisioned,
		handleCollisions,
		tokensIssued,
		tasksSequenced,
		sequenceConflicts,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)

		httpRequests.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordAccountProvisioned counts a created account.
func RecordAccountProvisioned() {
	accountsProvisioned.Inc()
}

// RecordHandleCollision counts a rejected handle candidate. stage is "lookup"
// when the existence check found it taken and "insert" when the unique index did.
func RecordHandleCollision(stage string) {
	handleCollisions.WithLabelValues(stage).Inc()
}

// RecordTokenIssued counts a freshly minted bearer token.
func RecordTokenIssued() {
	tokensIssued.Inc()
}

// RecordTaskSequenced counts a task stamped with a sequence code.
func RecordTaskSequenced() {
	tasksSequenced.Inc()
}

// RecordSequenceConflict counts a (project, seq) uniqueness rejection.
func RecordSequenceConflict() {
	sequenceConflicts.Inc()
}
