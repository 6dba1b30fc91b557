// Package server renders the grid in a browser. It serves an embedded page,
// a small JSON API, a websocket stream of render events and the Prometheus
// endpoint.
package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibgrid/internal/game"
	"github.com/agbru/fibgrid/internal/logging"
)

//go:embed web
var webFS embed.FS

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves one game to any number of browsers.
type Server struct {
	addr     string
	game     *game.Game
	hub      *Hub
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
	http     *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(c SecurityConfig) Option {
	return func(s *Server) { s.security = c }
}

// New creates a server for g. hub must be the Surface g was built with.
func New(addr string, g *game.Game, hub *Hub, opts ...Option) *Server {
	s := &Server{
		addr:     addr,
		game:     g,
		hub:      hub,
		metrics:  NewMetrics(),
		logger:   logging.Nop(),
		security: DefaultSecurityConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          logging.StdLogger(s.logger),
	}
	return s
}

// Handler returns the root handler. It is exposed for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

func (s *Server) routes() http.Handler {
	static, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}

	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return SecurityMiddleware(s.security, s.metricsMiddleware(h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", wrap(s.handleIndex(static)))
	mux.Handle("/static/", http.StripPrefix("/static/", s.staticHandler(static)))
	mux.HandleFunc("/api/grid", wrap(s.handleGrid))
	mux.HandleFunc("/api/click", wrap(s.handleClick))
	mux.HandleFunc("/api/size", wrap(s.handleSize))
	mux.HandleFunc("/api/sequence", wrap(s.handleSequence))
	mux.HandleFunc("/healthz", wrap(s.handleHealth))
	mux.HandleFunc("/metrics", wrap(s.handleMetrics))
	mux.Handle("/ws", s.metricsMiddleware(websocket.Server{
		Handshake: s.handshake,
		Handler:   s.serveClient,
	}.ServeHTTP))
	return mux
}

// handshake enforces AllowedOrigins on websocket upgrades.
func (s *Server) handshake(cfg *websocket.Config, r *http.Request) error {
	origin := r.Header.Get("Origin")
	if _, ok := s.security.originAllowed(origin); !ok {
		return errors.New("origin not allowed")
	}
	if loc, err := websocket.Origin(cfg, r); err == nil {
		cfg.Origin = loc
	}
	return nil
}

// Run serves HTTP and the websocket hub until ctx is canceled, then shuts
// both down.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return s.hub.Run(gctx) })

	g.Go(func() error {
		s.logger.Info("serving grid", logging.String("addr", ln.Addr().String()))
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http shutdown", err)
			return err
		}
		s.logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
