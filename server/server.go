// Package server exposes the generator over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mahmudulbisd/stockgen-ai-pro/internal/logging"
	"github.com/mahmudulbisd/stockgen-ai-pro/models"
)

const maxBodyBytes = 1 << 20

// Generator produces a batch of variations. *client.Client implements it.
type Generator interface {
	GenerateStockAssets(ctx context.Context, cfg models.GeneratorConfig) ([]models.StockAssetVariation, error)
}

type server struct {
	gen     Generator
	logger  logging.Logger
	timeout time.Duration
	now     func() time.Time
}

// Option configures the handler returned by New.
type Option func(*server)

// WithGenerationTimeout bounds each generation call. Zero means no bound.
func WithGenerationTimeout(d time.Duration) Option {
	return func(s *server) {
		s.timeout = d
	}
}

// WithClock overrides the time source used for export file names.
func WithClock(now func() time.Time) Option {
	return func(s *server) {
		s.now = now
	}
}

// New returns the router serving the generator API.
func New(gen Generator, logger logging.Logger, options ...Option) http.Handler {
	s := &server{
		gen:    gen,
		logger: logger,
		now:    time.Now,
	}
	for _, option := range options {
		option(s)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)

	r.Route("/v1/variations", func(r chi.Router) {
		r.Post("/", s.generate)
		r.Post("/export", s.export)
	})

	return r
}

// requestLogger writes one line per request once the handler has finished.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Infof("%s %s %d %dB %s request_id=%s",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
		})
	}
}
