package task

import (
	"log/slog"
	"time"
)

// CPICalculationTaskFactory creates CPICalculationTask instances with
// the shared dependencies pre-wired, so the trigger endpoint only needs
// a request identifier.
type CPICalculationTaskFactory struct {
	fetcher  DataFetcher
	reporter ResultReporter
	delay    time.Duration
	logger   *slog.Logger
}

// NewCPICalculationTaskFactory creates a new factory for CPI calculation
// tasks.
func NewCPICalculationTaskFactory(
	fetcher DataFetcher,
	reporter ResultReporter,
	delay time.Duration,
	logger *slog.Logger,
) *CPICalculationTaskFactory {
	return &CPICalculationTaskFactory{
		fetcher:  fetcher,
		reporter: reporter,
		delay:    delay,
		logger:   logger,
	}
}

// CreateTask creates a new task for the given request identifier.
func (f *CPICalculationTaskFactory) CreateTask(requestID string) (*CPICalculationTask, error) {
	return NewCPICalculationTask(requestID, f.fetcher, f.reporter, f.delay, f.logger)
}
