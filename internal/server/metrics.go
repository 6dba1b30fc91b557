package server

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP collectors live in the default registry, next to the Go runtime and
// game collectors, and are shared by every Metrics value.
var (
	requestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fibgrid_http_requests_total",
		Help: "Total number of HTTP requests served.",
	})
	responsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fibgrid_http_responses_total",
		Help: "HTTP responses by status code.",
	}, []string{"code"})
	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fibgrid_http_active_requests",
		Help: "Number of HTTP requests currently being served.",
	})
)

// Metrics exposes the Prometheus endpoint and the HTTP counters.
type Metrics struct {
	handler http.Handler
}

// NewMetrics returns a Metrics serving the default Prometheus registry.
func NewMetrics() *Metrics {
	return &Metrics{handler: promhttp.Handler()}
}

// IncrementActiveRequests marks a request as started.
func (m *Metrics) IncrementActiveRequests() {
	activeRequests.Inc()
	requestsTotal.Inc()
}

// DecrementActiveRequests marks a request as finished.
func (m *Metrics) DecrementActiveRequests() {
	activeRequests.Dec()
}

// RecordResponse counts a response by status code.
func (m *Metrics) RecordResponse(code int) {
	responsesTotal.WithLabelValues(strconv.Itoa(code)).Inc()
}

// WritePrometheus writes every registered metric in the text exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack lets the websocket handler take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

// metricsMiddleware tracks in-flight requests and response codes.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.RecordResponse(rec.status)
	}
}
