package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkravets/cpi-worker/internal/config"
	"github.com/mkravets/cpi-worker/internal/platform/upstream"
	"github.com/mkravets/cpi-worker/internal/task"
)

// application holds the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	upstreamClient *upstream.Client
	taskFactory    *task.CPICalculationTaskFactory
	taskRunner     *task.TaskRunner
}

// newApplication creates a new application instance with all
// dependencies initialized and the task runner started.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	app.upstreamClient = upstream.NewClient(
		cfg.Upstream,
		cfg.Auth.Token,
		logger.With("component", "upstream_client"),
	)

	// The upstream client serves both sides of a task: it fetches the
	// request data and reports the calculation result.
	app.taskFactory = task.NewCPICalculationTaskFactory(
		app.upstreamClient,
		app.upstreamClient,
		cfg.Task.Delay(),
		logger,
	)

	app.taskRunner = setupTaskRunner(cfg, logger)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// setupTaskRunner creates and starts the background task processor.
func setupTaskRunner(cfg *config.Config, logger *slog.Logger) *task.TaskRunner {
	taskRunner := task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)

	taskRunner.Start()
	return taskRunner
}

// cleanup handles graceful shutdown of application resources. Stopping
// the task runner waits for the in-flight task and cancels any tasks
// still queued.
func (app *application) cleanup() {
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	app.logger.Info("Application shutdown completed")
}
