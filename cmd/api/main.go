package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"dlt-orchestrator/config"
	"dlt-orchestrator/internal/app"
	httpHandler "dlt-orchestrator/internal/adapter/http/handler"
	"dlt-orchestrator/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("DLT_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("network", cfg.Chain.Network).
		Str("storage", cfg.Database.Driver).
		Msg("Starting DLT orchestrator")

	ctx := context.Background()

	// Storage, locks, directory and sagas
	engine, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build engine")
	}
	defer engine.Close()

	// Load OpenAPI spec for Swagger UI
	specBytes, err := os.ReadFile("docs/api/openapi.yaml")
	if err == nil {
		err = httpHandler.SetSwaggerSpec(specBytes)
	}
	if err != nil {
		log.Warn().Err(err).Msg("OpenAPI spec unavailable, Swagger UI disabled")
	} else {
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	}

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: engine.Router(),
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
