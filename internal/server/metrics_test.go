package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/fibgrid/internal/logging"
)

// HTTP collectors are process-wide, so these tests compare deltas and do not
// run in parallel.

func TestMetrics_ActiveRequests(t *testing.T) {
	m := NewMetrics()
	base := testutil.ToFloat64(activeRequests)
	total := testutil.ToFloat64(requestsTotal)

	m.IncrementActiveRequests()
	assert.Equal(t, base+1, testutil.ToFloat64(activeRequests))
	assert.Equal(t, total+1, testutil.ToFloat64(requestsTotal))

	m.DecrementActiveRequests()
	assert.Equal(t, base, testutil.ToFloat64(activeRequests))
	assert.Equal(t, total+1, testutil.ToFloat64(requestsTotal), "the total never decreases")
}

func TestMetrics_RecordResponse(t *testing.T) {
	m := NewMetrics()
	before := testutil.ToFloat64(responsesTotal.WithLabelValues("422"))

	m.RecordResponse(http.StatusUnprocessableEntity)
	m.RecordResponse(http.StatusUnprocessableEntity)

	assert.Equal(t, before+2, testutil.ToFloat64(responsesTotal.WithLabelValues("422")))
}

func TestServer_metricsMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		status int
		write  bool
	}{
		{"implicit 200", http.StatusOK, false},
		{"explicit teapot", http.StatusTeapot, true},
		{"not found", http.StatusNotFound, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Server{metrics: NewMetrics()}
			label := responsesTotal.WithLabelValues(strconv.Itoa(tt.status))
			before := testutil.ToFloat64(label)
			active := testutil.ToFloat64(activeRequests)

			var inFlight float64
			h := s.metricsMiddleware(func(w http.ResponseWriter, r *http.Request) {
				inFlight = testutil.ToFloat64(activeRequests)
				if tt.write {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(http.StatusText(tt.status)))
			})
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/api/grid", http.NoBody))

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, active+1, inFlight, "gauge counts the request while it runs")
			assert.Equal(t, active, testutil.ToFloat64(activeRequests))
			assert.Equal(t, before+1, testutil.ToFloat64(label))
		})
	}
}

func TestServer_handleMetrics(t *testing.T) {
	s, g := newTestServer(t, 5)
	h := s.Handler()

	do(t, h, http.MethodGet, "/healthz", "")
	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "fibgrid_http_requests_total")
	assert.Contains(t, body, "fibgrid_http_active_requests")
	assert.Contains(t, body, `fibgrid_http_responses_total{code="200"}`)

	for _, method := range []string{http.MethodPost, http.MethodPut} {
		rec := do(t, h, method, "/metrics", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"), method)
	}
	assert.Zero(t, g.Stats().Clicks)
}

// testLogger is a minimal logger for testing that implements logging.Logger.
type testLogger struct{}

func newTestLogger() *testLogger                                  { return &testLogger{} }
func (l *testLogger) Info(_ string, _ ...logging.Field)           {}
func (l *testLogger) Error(_ string, _ error, _ ...logging.Field) {}
func (l *testLogger) Debug(_ string, _ ...logging.Field)          {}
func (l *testLogger) Printf(_ string, _ ...any)                   {}
func (l *testLogger) Println(_ ...any)                            {}
