package task

import (
	"context"
	"log/slog"
	"sync"
)

// TaskRunnerConfig holds configuration for the task runner
type TaskRunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks.
	// The CPI pipeline runs with one worker, so accepted tasks execute
	// strictly in submission order with no overlap.
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue.
	// Enqueue is rejected once the buffer is full.
	QueueSize int
}

// DefaultTaskRunnerConfig returns a TaskRunnerConfig with reasonable defaults
func DefaultTaskRunnerConfig() TaskRunnerConfig {
	return TaskRunnerConfig{
		WorkerCount: 1,
		QueueSize:   100,
	}
}

// TaskRunner manages background task processing. Work is held only in
// memory: nothing survives a restart, and a task accepted by Submit
// runs at most once.
type TaskRunner struct {
	queue      *TaskQueue
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     TaskRunnerConfig
	logger     *slog.Logger
	errHandler func(task Task, err error)
}

// NewTaskRunner creates a new TaskRunner
func NewTaskRunner(config TaskRunnerConfig, logger *slog.Logger) *TaskRunner {
	if config.WorkerCount <= 0 {
		config.WorkerCount = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultTaskRunnerConfig().QueueSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &TaskRunner{
		queue:      NewTaskQueue(config.QueueSize, logger),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     logger,
		errHandler: func(task Task, err error) {
			// Default error handler just logs the error
			logger.Error("task execution failed",
				"task_id", task.ID(),
				"task_type", task.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *TaskRunner) SetErrorHandler(handler func(task Task, err error)) {
	r.errHandler = handler
}

// Submit enqueues a task and returns immediately; it never waits for
// any part of the task to run. ErrQueueFull and ErrQueueClosed are the
// only failure modes.
func (r *TaskRunner) Submit(task Task) error {
	return r.queue.Enqueue(task)
}

// Start launches the worker goroutines.
func (r *TaskRunner) Start() {
	for i := 0; i < r.config.WorkerCount; i++ {
		r.wg.Add(1)
		go r.worker(i)
	}
}

// Stop gracefully shuts down the task runner: the in-flight task
// finishes, and tasks still queued transition to cancelled without
// fetching, calculating, or reporting.
func (r *TaskRunner) Stop() {
	r.cancelFunc()
	r.wg.Wait()
	r.queue.Close()

	for task := range r.queue.GetChannel() {
		task.Cancel()
		r.logger.Info("task cancelled at shutdown",
			"task_id", task.ID(),
			"task_type", task.Type())
	}
}

// worker processes tasks from the queue
func (r *TaskRunner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)

	for {
		select {
		case <-r.ctx.Done():
			r.logger.Debug("stopping worker", "worker_id", id)
			return

		case task, ok := <-r.queue.GetChannel():
			if !ok {
				r.logger.Debug("task channel closed, stopping worker", "worker_id", id)
				return
			}

			r.processTask(task, id)
		}
	}
}

// processTask handles execution of a single task. The task receives a
// background context: a running task is never interrupted, even during
// shutdown.
func (r *TaskRunner) processTask(task Task, workerID int) {
	logger := r.logger.With(
		"task_id", task.ID(),
		"task_type", task.Type(),
		"worker_id", workerID,
	)

	logger.Info("processing task")

	if err := task.Execute(context.Background()); err != nil {
		logger.Error("task execution failed", "error", err)
		r.errHandler(task, err)
		return
	}

	logger.Info("task completed", "status", task.Status())
}
