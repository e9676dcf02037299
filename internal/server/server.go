// Package server exposes the query engine over HTTP. It is a thin layer:
// handle validation, status-to-HTTP mapping and JSON rendering only.
package server

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"likestats/pkg/config"
	"likestats/pkg/likes"
	"likestats/pkg/logger"
)

// handlePattern is the upstream service's handle syntax.
var handlePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)

// StatsProvider is the engine operation the server exposes.
type StatsProvider interface {
	GetStats(ctx context.Context, handle string) likes.QueryResult
}

// Server is the HTTP front for the query engine.
type Server struct {
	engine   StatsProvider
	cfg      config.ServerConfig
	logger   logger.Logger
	router   chi.Router
	validate *validator.Validate
}

// New creates a Server and registers its routes.
func New(engine StatsProvider, cfg config.ServerConfig, log logger.Logger) *Server {
	if log == nil {
		log = logger.GetLogger()
	}

	validate := validator.New()
	_ = validate.RegisterValidation("handle", func(fl validator.FieldLevel) bool {
		return handlePattern.MatchString(fl.Field().String())
	})

	s := &Server{
		engine:   engine,
		cfg:      cfg,
		logger:   log,
		router:   chi.NewRouter(),
		validate: validate,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	s.router.Get("/{handle}", s.handleGetStats)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	s.logger.WithField("addr", s.cfg.ListenAddr).Info("HTTP server listening")
	return httpSrv.ListenAndServe()
}
