package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	apperrors "github.com/agbru/fibgrid/internal/errors"
	"github.com/agbru/fibgrid/internal/game"
	"github.com/agbru/fibgrid/internal/grid"
	"github.com/agbru/fibgrid/internal/logging"
)

// pagePolicy loosens the default CSP for the page itself, which loads its
// own script and stylesheet and opens a websocket back to this server.
const pagePolicy = "default-src 'none'; script-src 'self'; style-src 'self'; connect-src 'self'; frame-ancestors 'none'"

type errorResponse struct {
	Error string `json:"error"`
}

type gridResponse struct {
	Size       int          `json:"size"`
	Generation uint64       `json:"generation"`
	Cells      [][]string   `json:"cells"`
	Touched    []grid.Coord `json:"touched"`
	Matched    []grid.Coord `json:"matched"`
	MaxSize    int          `json:"maxSize"`
}

type clickRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type sizeRequest struct {
	Size json.RawMessage `json:"size"`
}

type sequenceResponse struct {
	From  uint64   `json:"from"`
	Terms []string `json:"terms"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed string) {
	s.logger.Debug("method not allowed", logging.String("method", r.Method), logging.String("path", r.URL.Path))
	w.Header().Set("Allow", allowed)
	s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.security.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) handleIndex(static fs.FS) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			s.methodNotAllowed(w, r, http.MethodGet)
			return
		}
		page, err := fs.ReadFile(static, "index.html")
		if err != nil {
			s.logger.Error("read index page", err)
			s.writeError(w, http.StatusInternalServerError, "page unavailable")
			return
		}
		w.Header().Set("Content-Security-Policy", pagePolicy)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}
}

func (s *Server) staticHandler(static fs.FS) http.Handler {
	files := http.FileServer(http.FS(static))
	return SecurityMiddleware(s.security, s.metricsMiddleware(files.ServeHTTP))
}

func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	s.writeGrid(w)
}

func (s *Server) writeGrid(w http.ResponseWriter) {
	snap := s.game.Snapshot()
	ev := resetEvent(snap)
	s.writeJSON(w, http.StatusOK, gridResponse{
		Size:       snap.Size,
		Generation: snap.Generation,
		Cells:      ev.Cells,
		Touched:    nonNil(snap.Touched),
		Matched:    nonNil(snap.Matched),
		MaxSize:    s.game.MaxSize(),
	})
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req clickRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Row == nil || req.Col == nil {
		s.writeError(w, http.StatusBadRequest, "row and col are required")
		return
	}

	out, err := s.game.Click(r.Context(), *req.Row, *req.Col)
	var coordErr apperrors.CoordinateError
	switch {
	case err == nil:
		out.Touched = nonNil(out.Touched)
		out.Matched = nonNil(out.Matched)
		s.writeJSON(w, http.StatusOK, out)
	case errors.As(err, &coordErr):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case apperrors.IsContextError(err):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("click failed", err)
		s.writeError(w, http.StatusInternalServerError, "click failed")
	}
}

// handleSize accepts the size as a JSON string or number, the way a form
// input reports it.
func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req sizeRequest
	if !s.decode(w, r, &req) {
		return
	}

	input := string(bytes.TrimSpace(req.Size))
	var str string
	if err := json.Unmarshal(req.Size, &str); err == nil {
		input = str
	}

	if err := s.game.Resize(input); err != nil {
		if errors.Is(err, apperrors.ErrInvalidResize) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.logger.Error("resize failed", err)
		s.writeError(w, http.StatusInternalServerError, "resize failed")
		return
	}
	s.writeGrid(w)
}

func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	from, err := strconv.ParseUint(r.URL.Query().Get("from"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "from must be a non-negative integer")
		return
	}
	run := s.game.SequenceFrom(from)
	if run == nil {
		s.writeError(w, http.StatusNotFound, strconv.FormatUint(from, 10)+" is not a Fibonacci number")
		return
	}
	terms := make([]string, len(run))
	for i, t := range run {
		terms[i] = t.String()
	}
	s.writeJSON(w, http.StatusOK, sequenceResponse{From: from, Terms: terms})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w, r, http.MethodGet)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func nonNil(coords []grid.Coord) []grid.Coord {
	if coords == nil {
		return []grid.Coord{}
	}
	return coords
}

// compile-time check that the hub can drive a game.
var _ game.Surface = (*Hub)(nil)
