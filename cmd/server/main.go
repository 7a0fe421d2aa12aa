// Package main implements the entry point for the personal CPI worker,
// a small service that accepts calculation triggers over HTTP and
// processes them asynchronously against an upstream data service.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/mkravets/cpi-worker/internal/config"
	"github.com/mkravets/cpi-worker/internal/platform/logger"
)

func main() {
	// A .env file is a local development convenience; in deployed
	// environments configuration comes from real environment variables.
	_ = godotenv.Load()

	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(context.Background()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging, and wires the
// application components together.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"upstream_base_url", cfg.Upstream.BaseURL,
		"task_delay", cfg.Task.Delay())

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	return app, nil
}
