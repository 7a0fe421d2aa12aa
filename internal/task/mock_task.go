package task

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// MockTask is a simple implementation of the Task interface for testing
type MockTask struct {
	TaskID      uuid.UUID
	TaskType    string
	TaskPayload []byte
	ExecuteFn   func(ctx context.Context) error

	mu         sync.Mutex
	taskStatus TaskStatus
}

// NewMockTask creates a new MockTask with the given ID and type
func NewMockTask(id uuid.UUID, taskType string, payload []byte) *MockTask {
	return &MockTask{
		TaskID:      id,
		TaskType:    taskType,
		TaskPayload: payload,
		taskStatus:  TaskStatusQueued,
		ExecuteFn:   func(ctx context.Context) error { return nil },
	}
}

// ID returns the task's unique identifier
func (t *MockTask) ID() uuid.UUID {
	return t.TaskID
}

// Type returns the task type identifier
func (t *MockTask) Type() string {
	return t.TaskType
}

// Payload returns the task data as a byte slice
func (t *MockTask) Payload() []byte {
	return t.TaskPayload
}

// Status returns the current task status
func (t *MockTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.taskStatus
}

// SetStatus updates the mock's status
func (t *MockTask) SetStatus(status TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.taskStatus = status
}

// Cancel marks the task cancelled
func (t *MockTask) Cancel() {
	t.SetStatus(TaskStatusCancelled)
}

// Execute runs the task logic
func (t *MockTask) Execute(ctx context.Context) error {
	t.SetStatus(TaskStatusRunning)
	err := t.ExecuteFn(ctx)
	if err != nil {
		t.SetStatus(TaskStatusFailed)
		return err
	}
	t.SetStatus(TaskStatusCompleted)
	return nil
}

// MockPayload is a sample payload structure used for testing
type MockPayload struct {
	Message string `json:"message"`
}

// CreateMockTaskWithPayload is a helper function to create a MockTask with a structured payload
func CreateMockTaskWithPayload(message string) *MockTask {
	data, _ := json.Marshal(MockPayload{Message: message})
	return NewMockTask(uuid.New(), "mock_task", data)
}
