package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/fibgrid/internal/game"
)

func newTestServer(t *testing.T, size int) (*Server, *game.Game) {
	t.Helper()
	hub := NewHub(newTestLogger())
	g, err := game.New(size, game.WithSurface(hub), game.WithMaxSize(64))
	require.NoError(t, err)
	return New("127.0.0.1:0", g, hub, WithLogger(newTestLogger())), g
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, http.NoBody)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func TestHandleGrid(t *testing.T) {
	s, _ := newTestServer(t, 6)
	rec := do(t, s.Handler(), http.MethodGet, "/api/grid", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[gridResponse](t, rec)
	assert.Equal(t, 6, resp.Size)
	assert.Equal(t, 64, resp.MaxSize)
	require.Len(t, resp.Cells, 6)
	assert.Equal(t, "0", resp.Cells[5][5])
	assert.Empty(t, resp.Touched)
}

func TestHandleClick(t *testing.T) {
	s, g := newTestServer(t, 5)
	h := s.Handler()

	rec := do(t, h, http.MethodPost, "/api/click", `{"row":2,"col":3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	out := decodeBody[game.Outcome](t, rec)
	assert.Len(t, out.Touched, 9)
	assert.Empty(t, out.Matched)
	assert.Equal(t, uint64(1), g.Stats().Clicks)

	t.Run("out of range", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/click", `{"row":9,"col":0}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeBody[errorResponse](t, rec).Error, "outside")
	})

	t.Run("missing column", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/click", `{"row":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/api/click", `{"row":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := do(t, h, http.MethodGet, "/api/click", "")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	})
}

func TestHandleSize(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantSize int
	}{
		{"string value", `{"size":"8"}`, http.StatusOK, 8},
		{"number value", `{"size":7}`, http.StatusOK, 7},
		{"zero", `{"size":"0"}`, http.StatusUnprocessableEntity, 5},
		{"letters", `{"size":"abc"}`, http.StatusUnprocessableEntity, 5},
		{"fraction", `{"size":2.5}`, http.StatusUnprocessableEntity, 5},
		{"above maximum", `{"size":65}`, http.StatusUnprocessableEntity, 5},
		{"missing", `{}`, http.StatusUnprocessableEntity, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, g := newTestServer(t, 5)
			require.NoError(t, g.Set(1, 1, 13))

			rec := do(t, s.Handler(), http.MethodPost, "/api/size", tt.body)
			assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
			assert.Equal(t, tt.wantSize, g.Size())
			if tt.wantCode != http.StatusOK {
				assert.Equal(t, uint64(13), g.Snapshot().Cells[1][1].Value, "rejected resize must keep values")
			}
		})
	}
}

func TestHandleSequence(t *testing.T) {
	s, _ := newTestServer(t, 5)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/api/sequence?from=89", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[sequenceResponse](t, rec)
	assert.Equal(t, []string{"89", "144", "233", "377", "610"}, resp.Terms)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/sequence?from=4", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/sequence?from=x", "").Code)
}

func TestIndexAndStatic(t *testing.T) {
	s, _ := newTestServer(t, 5)
	h := s.Handler()

	rec := do(t, h, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/static/app.js")
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "script-src 'self'")

	rec = do(t, h, http.MethodGet, "/static/app.js", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/nope", "").Code)
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t, 5)
	rec := do(t, s.Handler(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
