// Package server exposes the tagcloud pipeline over HTTP.
//
// Routes:
//
//	POST /render   JSON {"text": ..., "options": {...}} -> encoded image
//	POST /words    JSON {"text": ..., "options": {...}} -> ranked word list
//	GET  /fonts    available font families
//	GET  /healthz  liveness
//	GET  /version  build information
//
// Every response carries an X-Request-ID header. Errors are JSON objects
// with the error code from pkg/errors and a matching HTTP status.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/tagcloud/tagcloud/pkg/pipeline"
)

// Defaults for Config.
const (
	DefaultAddr          = ":8080"
	DefaultMaxBodyBytes  = 8 << 20
	DefaultRunTimeout    = time.Minute
	DefaultShutdownGrace = 10 * time.Second
)

// Config configures a Server.
type Config struct {
	Addr   string
	Runner *pipeline.Runner
	Logger *log.Logger

	// Defaults are applied to every request's options before the request's
	// own values.
	Defaults pipeline.Options

	MaxBodyBytes  int64
	RunTimeout    time.Duration
	ShutdownGrace time.Duration
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Logger == nil {
		c.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if c.Runner == nil {
		c.Runner = pipeline.NewRunner(nil, nil, c.Logger)
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.RunTimeout <= 0 {
		c.RunTimeout = DefaultRunTimeout
	}
	if c.ShutdownGrace <= 0 {
		c.ShutdownGrace = DefaultShutdownGrace
	}
}

// Server is the HTTP API.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New builds a server and its routes.
func New(cfg Config) *Server {
	cfg.setDefaults()
	s := &Server{cfg: cfg, logger: cfg.Logger.WithPrefix("http")}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/fonts", s.handleFonts)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(s.limitBody)
		r.Post("/render", s.handleRender)
		r.Post("/words", s.handleWords)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})

	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is done, then shuts down gracefully,
// letting in-flight requests finish within the shutdown grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
