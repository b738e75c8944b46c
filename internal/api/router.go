package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpgo/loan-amortizer/internal/api/handler"
	mw "github.com/rpgo/loan-amortizer/internal/api/middleware"
	"github.com/rpgo/loan-amortizer/internal/calculation"
	"github.com/rpgo/loan-amortizer/internal/config"
)

// SetupRouter wires middleware and routes. ctx bounds background work started
// by middleware such as the rate limiter janitor.
func SetupRouter(ctx context.Context, gen *calculation.Generator, cfg *config.ServerConfig, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(ctx, router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupScheduleRoutes(router, gen, logger)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return router
}

func setupMiddleware(ctx context.Context, router *chi.Mux, cfg *config.ServerConfig, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(ctx, cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.ServerConfig, logger *slog.Logger) {
	if !cfg.Metrics.Enabled {
		logger.Info("Prometheus metrics endpoint disabled")
		return
	}
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupScheduleRoutes(router *chi.Mux, gen *calculation.Generator, logger *slog.Logger) {
	scheduleHandler := handler.NewScheduleHandler(gen, logger)
	adjustmentHandler := handler.NewAdjustmentHandler(gen, logger)

	router.Post("/schedules", scheduleHandler.CreateSchedule)
	router.Route("/adjustments", func(r chi.Router) {
		r.Post("/pay", adjustmentHandler.Pay)
		r.Post("/credit", adjustmentHandler.Credit)
	})
}
