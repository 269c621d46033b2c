// Package server serves mounted control trees over HTTP: first-paint
// markup on GET /, a websocket per client session streaming mutation
// frames, and Prometheus metrics on /metrics.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/faxui/fax"
	"github.com/faxui/fax/pkg/snapshot"
)

const tracerName = "fax"

// RootFactory builds a fresh mounted root for one client session.
type RootFactory func() (*fax.Root, error)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// NewRoot builds the per-session control tree. Required.
	NewRoot RootFactory

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Snapshots, when set, receives a copy of each first paint under
	// the name "index".
	Snapshots snapshot.Store
}

// Server accepts client connections and runs one Session per
// websocket.
type Server struct {
	cfg      Config
	logger   *slog.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*Session

	httpServer *http.Server
}

// New creates a Server from cfg.
func New(cfg Config) (*Server, error) {
	if cfg.NewRoot == nil {
		return nil, fmt.Errorf("server: Config.NewRoot is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	return &Server{
		cfg:     cfg,
		logger:  cfg.Logger,
		metrics: NewMetrics(cfg.Registry),
		tracer:  otel.Tracer(tracerName),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		sessions: make(map[string]*Session),
	}, nil
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleWebsocket)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// ListenAndServe blocks serving HTTP until the context is canceled,
// then drains open sessions.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.closeSessions()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// handleIndex renders a fresh root and serves its first-paint markup.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	root, err := s.cfg.NewRoot()
	if err != nil {
		s.logger.Error("first paint failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	markup := root.Markup()

	if s.cfg.Snapshots != nil {
		if err := s.cfg.Snapshots.Save(r.Context(), "index", markup); err != nil {
			s.logger.Warn("snapshot save failed", "error", err)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(markup))
}

// handleWebsocket upgrades the connection and runs a Session until the
// client goes away.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	root, err := s.cfg.NewRoot()
	if err != nil {
		s.logger.Error("session root failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	sess := &Session{
		id:      uuid.NewString(),
		conn:    conn,
		root:    root,
		logger:  s.logger,
		metrics: s.metrics,
		tracer:  s.tracer,
		done:    make(chan struct{}),
	}
	root.OnUpdate(sess.pushMutations)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
	s.metrics.activeSessions.Inc()
	s.logger.Info("session opened", "session", sess.id, "remote", r.RemoteAddr)

	sess.ReadLoop()

	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
