package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "armctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "armctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	commandsExecuted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "armctl",
			Subsystem: "command",
			Name:      "executions_total",
			Help:      "Command lines executed by code and outcome.",
		},
		[]string{"code", "success"},
	)
	movesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "armctl",
			Subsystem: "motion",
			Name:      "moves_rejected_total",
			Help:      "Move commands rejected by the coordinator.",
		},
		[]string{"reason"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, commandsExecuted, movesRejected)
	})
}

func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(method, path, statusLabel).Observe(duration.Seconds())
}

func RecordCommand(code string, success bool) {
	RegisterMetrics()
	commandsExecuted.WithLabelValues(code, strconv.FormatBool(success)).Inc()
}

func RecordMoveRejected(reason string) {
	RegisterMetrics()
	movesRejected.WithLabelValues(reason).Inc()
}
