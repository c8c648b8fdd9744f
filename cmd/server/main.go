// Package main is the entry point for the valuation and risk engine service.
// It loads configuration, wires the cache database, benchmark rate client and
// analysis services, starts the background jobs and serves the HTTP API until
// it receives SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vantez/engine/internal/config"
	"github.com/vantez/engine/internal/di"
	"github.com/vantez/engine/internal/server"
	"github.com/vantez/engine/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().
		Str("data_dir", cfg.DataDir).
		Str("macro_version", cfg.Macro.Version).
		Msg("Starting valuation engine")

	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer container.Close()

	// Warm the rate cache so the first projection does not wait on the network
	go func() {
		if err := container.Scheduler.RunNow(jobs.RefreshBenchmarkRate); err != nil {
			log.Warn().Err(err).Msg("Initial benchmark rate refresh failed, using cache or fallback")
		}
	}()

	container.Scheduler.Start()

	srv := server.New(server.Config{
		Log:            log,
		CacheDB:        container.CacheDB,
		Port:           cfg.Port,
		DevMode:        cfg.DevMode,
		Engine:         container.EngineService,
		Projector:      container.Projector,
		BenchmarkRates: container.BenchmarkClient,
		Simulator:      container.Simulator,
		Scheduler:      container.Scheduler,
		Jobs:           jobs.All(),
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	container.Scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
