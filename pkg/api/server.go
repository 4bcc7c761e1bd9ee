// Package api serves the planetscope JSON endpoints and HTML pages.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"github.com/toyinlola/planetscope/pkg/pipeline"
	"github.com/toyinlola/planetscope/pkg/report"
	"github.com/toyinlola/planetscope/pkg/scorer"
)

// Options configures a Server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Gzip         bool
	Version      string

	// Registry holds the tables exposed by /api/classify/{table}.
	// Defaults to scorer.DefaultRegistry.
	Registry *scorer.Registry
}

// Server is the HTTP front end for a pipeline.
type Server struct {
	router   *http.ServeMux
	server   *http.Server
	addr     string
	version  string
	pipeline *pipeline.Pipeline
	registry *scorer.Registry
	pages    *report.Pages
	metrics  *Metrics
}

// NewServer creates a server for p.
func NewServer(p *pipeline.Pipeline, opts Options) (*Server, error) {
	pages, err := report.NewPages()
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if opts.Registry == nil {
		opts.Registry = scorer.DefaultRegistry()
	}
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 15 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 60 * time.Second
	}

	s := &Server{
		router:   http.NewServeMux(),
		addr:     opts.Addr,
		version:  opts.Version,
		pipeline: p,
		registry: opts.Registry,
		pages:    pages,
		metrics:  NewMetrics(),
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router, opts.Gzip)
	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      handler,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  2 * opts.ReadTimeout,
	}

	return s, nil
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	slog.Info("starting HTTP server", "addr", s.addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api: serving on %s: %w", s.addr, err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("api: shutdown: %w", err)
	}
	return nil
}

// ServeHTTP implements http.Handler with the full middleware chain.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler; the last one applied runs first.
func (s *Server) applyMiddleware(handler http.Handler, gzip bool) http.Handler {
	// Recovery sits inside metrics so recovered panics are counted as 500s.
	handler = RecoveryMiddleware(handler)
	handler = s.metrics.Middleware(handler)
	handler = LoggingMiddleware(handler)
	handler = RequestIDMiddleware(handler)
	if gzip {
		handler = gzhttp.GzipHandler(handler)
	}
	return handler
}
