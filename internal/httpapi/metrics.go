package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "channelhub"
	metricsSubsystem = "http"

	// unmatchedRoute labels requests chi could not route, so probing
	// random paths cannot grow the label set.
	unmatchedRoute = "unmatched"
)

// apiMetrics holds the collectors for the HTTP surface of the hub. Requests
// are labelled by chi route pattern ("/instances/{id}/receivers/{receiverID}"),
// never by instance, channel or receiver ids.
type apiMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight *prometheus.GaugeVec
	rejected *prometheus.CounterVec
}

func newAPIMetrics() *apiMetrics {
	routeLabels := []string{"path", "method", "status"}
	return &apiMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "Hub API requests served, by route pattern",
		}, routeLabels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time spent serving hub API requests, by route pattern",
			Buckets:   prometheus.DefBuckets,
		}, routeLabels),
		inflight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "inflight_requests",
			Help:      "Hub API requests currently being served, by method",
		}, []string{"method"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "rejected_total",
			Help:      "Requests refused before reaching the hub, by reason",
		}, []string{"reason"}),
	}
}

func (m *apiMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.requests, m.duration, m.inflight, m.rejected}
}

func (m *apiMetrics) observe(route, method string, status int, elapsed time.Duration) {
	code := strconv.Itoa(status)
	m.requests.WithLabelValues(route, method, code).Inc()
	m.duration.WithLabelValues(route, method, code).Observe(elapsed.Seconds())
}

var (
	metrics       = newAPIMetrics()
	rejectedTotal = metrics.rejected
)

func init() {
	prometheus.MustRegister(metrics.collectors()...)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware records one sample per request. Mount it inside the chi
// router; the route pattern is only complete once routing has run.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inflight := metrics.inflight.WithLabelValues(r.Method)
		inflight.Inc()
		defer inflight.Dec()

		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sr, r)
		metrics.observe(routeLabel(r), r.Method, sr.status, time.Since(start))
	})
}

func routeLabel(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}

// IncrementRejected counts a request refused before it reached the hub.
// An empty reason is recorded as "unspecified".
func IncrementRejected(reason string) {
	if reason == "" {
		reason = "unspecified"
	}
	metrics.rejected.WithLabelValues(reason).Inc()
}
