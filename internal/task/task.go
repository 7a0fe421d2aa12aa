package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusQueued    TaskStatus = "queued"
	TaskStatusRunning   TaskStatus = "running"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
	TaskStatusCancelled TaskStatus = "cancelled"
)

// Task type constants
const (
	// TaskTypeCPICalculation represents the task type for personal CPI
	// calculations.
	TaskTypeCPICalculation = "cpi_calculation"
)

// Task represents a unit of background work to be processed
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Payload returns the task data as a byte slice
	Payload() []byte

	// Status returns the current task status
	Status() TaskStatus

	// Execute runs the task logic
	Execute(ctx context.Context) error

	// Cancel marks a still-queued task as cancelled. The runner calls it
	// for tasks drained from the queue at shutdown; it is never called on
	// a task that has started executing.
	Cancel()
}

// TaskQueueReader provides read-only access to the task channel
// allowing workers to consume tasks without the ability to enqueue
type TaskQueueReader interface {
	// GetChannel returns a read-only channel for consuming tasks
	GetChannel() <-chan Task
}

// TaskQueueWriter provides write access to the task queue
// allowing services to enqueue tasks for processing
type TaskQueueWriter interface {
	// Enqueue adds a task to the queue for processing
	// Returns an error if the queue is full or closed
	Enqueue(task Task) error

	// Close closes the task queue, preventing further task submission
	Close()
}
