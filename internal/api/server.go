// Package api exposes the detector over HTTP: single and batch analysis,
// stored history, and aggregate statistics.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"aidetect/internal/config"
	"aidetect/internal/engine"
	"aidetect/internal/storage"
)

// Server hosts the HTTP API.
type Server struct {
	engine *engine.Engine
	store  *storage.DB
	cfg    *config.Config
	log    zerolog.Logger
	http   *http.Server
}

// NewServer wires routes and middleware. store may be nil when persistence
// is disabled; history and stats endpoints then report empty data.
func NewServer(eng *engine.Engine, store *storage.DB, cfg *config.Config, log zerolog.Logger) *Server {
	s := &Server{
		engine: eng,
		store:  store,
		cfg:    cfg,
		log:    log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/analyze/batch", s.handleAnalyzeBatch)
	mux.HandleFunc("GET /api/history", s.handleHistory)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	var handler http.Handler = mux
	handler = CORS(handler)
	handler = Logging(log)(handler)
	handler = Recovery(log)(handler)
	handler = RequestID(handler)

	s.http = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: 2 * time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
	}
	return s
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.http.Addr).Msg("api listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// ServeHTTP exposes the full middleware chain for tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.http.Handler.ServeHTTP(w, r)
}
