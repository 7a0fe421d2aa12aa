package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mkravets/cpi-worker/internal/domain"
	"github.com/mkravets/cpi-worker/internal/domain/cpi"
)

// Status constants for CPICalculationTask
// These match the TaskStatus values defined in task.go
const (
	statusQueued    = "queued"
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
	statusCancelled = "cancelled"
)

// Common errors
var (
	ErrNilFetcher     = errors.New("data fetcher cannot be nil")
	ErrNilReporter    = errors.New("result reporter cannot be nil")
	ErrNilLogger      = errors.New("logger cannot be nil")
	ErrEmptyRequestID = errors.New("request ID cannot be empty")
)

// DataFetcher retrieves the spending-category payload for one request
// from the upstream service.
type DataFetcher interface {
	FetchRequestData(ctx context.Context, requestID string) (*domain.RequestData, error)
}

// ResultReporter delivers a calculation outcome to the upstream service.
type ResultReporter interface {
	ReportResult(ctx context.Context, outcome domain.CalculationOutcome) error
}

// cpiCalculationPayload represents the serialized data carried by the task
type cpiCalculationPayload struct {
	RequestID string `json:"request_id"`
}

// CPICalculationTask implements the Task interface for one personal CPI
// calculation: fixed delay, fetch, calculate, report. Reporting happens
// exactly once per task, whatever way the calculation ends.
type CPICalculationTask struct {
	id        uuid.UUID
	requestID string
	fetcher   DataFetcher
	reporter  ResultReporter
	delay     time.Duration
	logger    *slog.Logger
	status    string
}

// NewCPICalculationTask creates a new calculation task for the given
// request identifier. Duplicate submissions produce separate tasks.
func NewCPICalculationTask(
	requestID string,
	fetcher DataFetcher,
	reporter ResultReporter,
	delay time.Duration,
	logger *slog.Logger,
) (*CPICalculationTask, error) {
	if fetcher == nil {
		return nil, ErrNilFetcher
	}
	if reporter == nil {
		return nil, ErrNilReporter
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if requestID == "" {
		return nil, ErrEmptyRequestID
	}

	return &CPICalculationTask{
		id:        uuid.New(),
		requestID: requestID,
		fetcher:   fetcher,
		reporter:  reporter,
		delay:     delay,
		logger:    logger.With("task_type", TaskTypeCPICalculation, "request_id", requestID),
		status:    statusQueued,
	}, nil
}

// ID returns the task's unique identifier
func (t *CPICalculationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *CPICalculationTask) Type() string {
	return TaskTypeCPICalculation
}

// RequestID returns the identifier of the application this task computes
// the index for.
func (t *CPICalculationTask) RequestID() string {
	return t.requestID
}

// Payload returns the task data as a byte slice
func (t *CPICalculationTask) Payload() []byte {
	payload := cpiCalculationPayload{
		RequestID: t.requestID,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// If marshal fails, return an empty payload with error logged
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *CPICalculationTask) Status() TaskStatus {
	return TaskStatus(t.status)
}

// Cancel marks the task cancelled. Only the runner calls this, and only
// for tasks that never started executing.
func (t *CPICalculationTask) Cancel() {
	t.status = statusCancelled
}

// Execute runs the full calculation lifecycle. Whenever an outcome
// cannot be computed (fetch error, unexpected calculation error, or a
// recovered panic) the task still makes its single best-effort failure
// report before surfacing the error to the runner.
func (t *CPICalculationTask) Execute(ctx context.Context) error {
	t.status = statusRunning
	t.logger.Info("starting personal CPI calculation task", "delay", t.delay)

	// The fixed delay simulates the long-running part of the
	// computation; everything upstream-facing happens after it.
	select {
	case <-time.After(t.delay):
	case <-ctx.Done():
		t.status = statusFailed
		t.logger.Error("task cancelled by context", "error", ctx.Err())
		return fmt.Errorf("task cancelled by context: %w", ctx.Err())
	}

	outcome, err := t.run(ctx)
	if err != nil {
		t.status = statusFailed
		t.logger.Error("could not compute outcome, reporting failure", "error", err)
		t.report(ctx, domain.FailedOutcome(t.requestID))
		return err
	}

	t.report(ctx, outcome)
	t.status = statusCompleted
	t.logger.Info("personal CPI calculation task completed",
		"success", outcome.Success)
	return nil
}

// run fetches the request data and computes the outcome. A panic inside
// the calculation becomes an ordinary error so a bad payload can never
// kill the worker.
func (t *CPICalculationTask) run(ctx context.Context) (outcome domain.CalculationOutcome, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unexpected error during calculation: %v", p)
		}
	}()

	data, err := t.fetcher.FetchRequestData(ctx, t.requestID)
	if err != nil {
		return domain.CalculationOutcome{}, fmt.Errorf("failed to fetch request data: %w", err)
	}

	t.logger.Info("fetched request data",
		"categories", len(data.Categories),
		"comparison_date", data.ComparisonDate)

	return cpi.Calculate(t.requestID, *data), nil
}

// report makes the single delivery attempt for this task. Delivery
// failures are logged and dropped: the trigger path has already been
// answered, and there is no retry.
func (t *CPICalculationTask) report(ctx context.Context, outcome domain.CalculationOutcome) {
	if err := t.reporter.ReportResult(ctx, outcome); err != nil {
		t.logger.Error("failed to report result to upstream service",
			"error", err,
			"success", outcome.Success)
	}
}
