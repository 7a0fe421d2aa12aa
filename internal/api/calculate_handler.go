package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mkravets/cpi-worker/internal/api/shared"
	"github.com/mkravets/cpi-worker/internal/domain"
	"github.com/mkravets/cpi-worker/internal/task"
)

// TaskSubmitter is the narrow surface of the task runner the handler
// needs: accept a task and return immediately.
type TaskSubmitter interface {
	Submit(task task.Task) error
}

// TaskFactory creates a calculation task for a request identifier.
type TaskFactory interface {
	CreateTask(requestID string) (*task.CPICalculationTask, error)
}

// CalculateRequest represents the trigger request body. The application
// identifier may arrive as a JSON number or a string; the token must
// match the configured shared secret.
type CalculateRequest struct {
	PK    domain.ID `json:"pk"    validate:"required"`
	Token string    `json:"token" validate:"required"`
}

// CalculateHandler handles trigger requests for personal CPI calculations
type CalculateHandler struct {
	submitter TaskSubmitter
	factory   TaskFactory
	authToken string
	logger    *slog.Logger
}

// NewCalculateHandler creates a new CalculateHandler
func NewCalculateHandler(
	submitter TaskSubmitter,
	factory TaskFactory,
	authToken string,
	logger *slog.Logger,
) *CalculateHandler {
	return &CalculateHandler{
		submitter: submitter,
		factory:   factory,
		authToken: authToken,
		logger:    logger.With("component", "calculate_handler"),
	}
}

// Calculate handles POST /api/calculate-cpi requests. It validates the
// shared secret, enqueues the calculation, and acknowledges immediately:
// the caller never waits for (or learns about) the task outcome.
func (h *CalculateHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing required fields: pk and token")
		return
	}

	if req.Token != h.authToken {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
		return
	}

	requestID := string(req.PK)

	calcTask, err := h.factory.CreateTask(requestID)
	if err != nil {
		h.logger.Error("failed to create task", "error", err, "request_id", requestID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to start processing")
		return
	}

	if err := h.submitter.Submit(calcTask); err != nil {
		if errors.Is(err, task.ErrQueueFull) {
			shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Processing queue is full, try again later")
			return
		}
		h.logger.Error("failed to submit task", "error", err, "request_id", requestID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to start processing")
		return
	}

	h.logger.Info("calculation task submitted",
		"task_id", calcTask.ID(),
		"request_id", requestID)

	shared.RespondWithJSON(w, r, http.StatusAccepted, shared.MessageResponse{
		Message: fmt.Sprintf("Processing started for request %s", requestID),
	})
}
