package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angeloszaimis/college-costs/config"
	"github.com/angeloszaimis/college-costs/internal/college"
	"github.com/angeloszaimis/college-costs/internal/handler"
	"github.com/angeloszaimis/college-costs/internal/httpserver"
	"github.com/angeloszaimis/college-costs/internal/metrics"
	"github.com/angeloszaimis/college-costs/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:       cfg.Logging.Level,
		Environment: cfg.Server.Environment,
		AddSource:   true,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The catalog is fully loaded before the listener starts.
	catalog, err := loadCatalog(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to load college data",
			slog.String("path", cfg.Data.Path),
			slog.Any("err", err))
		os.Exit(1)
	}

	// The collector outlives ctx so events from in-flight requests are kept.
	collectorCtx, stopCollector := context.WithCancel(context.Background())
	defer stopCollector()

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.BufferSize, log)
		collector.Start(collectorCtx)
	}

	collegeHandler := handler.NewCollegeHandler(log, catalog, collector)
	router := setupRouter(collegeHandler, collector, catalog, time.Now())

	srv, err := httpserver.New(cfg.Server.Address(),
		withMiddleware(router, cfg, log),
		httpserver.WithShutdownTimeout(cfg.ShutdownTimeout()))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		log.Info("Server started", slog.String("addr", srv.Addr()))
		srvErrCh <- srv.Start()
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
		stopCollector()
		if collector != nil {
			collector.Wait()
		}
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger) (*college.Catalog, error) {
	columns := college.Columns{
		Name:              cfg.Data.Columns.Name,
		TuitionInState:    cfg.Data.Columns.TuitionInState,
		TuitionOutOfState: cfg.Data.Columns.TuitionOutOfState,
		RoomAndBoard:      cfg.Data.Columns.RoomAndBoard,
	}

	return college.NewLoader(columns, log).LoadFile(ctx, cfg.Data.Path)
}
