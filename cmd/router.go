package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/angeloszaimis/college-costs/config"
	"github.com/angeloszaimis/college-costs/internal/college"
	"github.com/angeloszaimis/college-costs/internal/handler"
	"github.com/angeloszaimis/college-costs/internal/healthcheck"
	"github.com/angeloszaimis/college-costs/internal/httpserver"
	"github.com/angeloszaimis/college-costs/internal/metrics"
)

// setupRouter registers the routes. Metrics routes are only added when a
// collector is given.
func setupRouter(collegeHandler *handler.CollegeHandler, metricsCollector *metrics.Collector, catalog *college.Catalog, startedAt time.Time) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /api/college", collegeHandler)
	mux.HandleFunc("GET /health", healthcheck.Handler(catalog, startedAt))

	if metricsCollector != nil {
		mux.HandleFunc("GET /stats", metricsCollector.Handler(catalog.Len()))
		mux.Handle("GET /metrics", httpserver.MetricsHandler())
	}

	return mux
}

// withMiddleware wraps the router. Instrument stays innermost so it can read
// the matched route pattern.
func withMiddleware(router http.Handler, cfg *config.Config, log *slog.Logger) http.Handler {
	middlewares := []httpserver.Middleware{
		httpserver.RequestID(),
		httpserver.Recover(log),
		httpserver.RateLimit(httpserver.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)),
		httpserver.Logging(log),
	}
	if cfg.Metrics.Enabled {
		middlewares = append(middlewares, httpserver.Instrument())
	}

	return httpserver.Chain(router, middlewares...)
}
