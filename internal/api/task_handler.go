package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/phrazzld/remind-api/internal/api/shared"
	"github.com/phrazzld/remind-api/internal/domain"
	"github.com/phrazzld/remind-api/internal/service"
	"github.com/phrazzld/remind-api/internal/store"
)

// TaskHandler handles task-related API requests. Every route is scoped to
// the authenticated owner: a task belonging to someone else reads as
// absent rather than forbidden, so IDs never leak across accounts.
type TaskHandler struct {
	taskService service.TaskService
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) (*TaskHandler, error) {
	if taskService == nil {
		return nil, fmt.Errorf("taskService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		validator:   validator.New(),
		logger:      logger.With("component", "task_handler"),
	}, nil
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	status, priority, recurrence, err := parseTaskEnums(req.Status, req.Priority, req.Recurrence)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	task, err := h.taskService.Add(
		r.Context(),
		username,
		req.Title,
		status,
		req.DueDate,
		req.Favorite,
		req.Category,
		priority,
		recurrence,
	)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(r.Context(), username)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	id, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	task, ok := h.getOwnedTask(w, r, id, username)
	if !ok {
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Search handles GET /api/tasks/search?q=...
func (h *TaskHandler) Search(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing q query parameter")
		return
	}

	tasks, err := h.taskService.Search(r.Context(), username, query)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to search tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	id, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	status, priority, recurrence, err := parseTaskEnums(req.Status, req.Priority, req.Recurrence)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	task, ok := h.getOwnedTask(w, r, id, username)
	if !ok {
		return
	}

	task.Title = req.Title
	task.Status = status
	task.DueDate = req.DueDate
	task.Favorite = req.Favorite
	task.Category = req.Category
	task.Priority = priority
	task.Recurrence = recurrence

	if err := h.taskService.Update(r.Context(), task); err != nil {
		h.respondServiceError(w, r, err, "failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	id, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	if _, ok := h.getOwnedTask(w, r, id, username); !ok {
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		h.respondServiceError(w, r, err, "failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetStatus handles POST /api/tasks/{id}/status. Completing a recurring
// task reschedules it; a stored due date that cannot be advanced leaves
// the task Done and reports rollover_failed to the caller.
func (h *TaskHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	username, ok := requireUsername(w, r)
	if !ok {
		return
	}
	id, ok := requirePathUUID(w, r, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if _, ok := h.getOwnedTask(w, r, id, username); !ok {
		return
	}

	task, err := h.taskService.SetStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, service.ErrRolloverFailed) && task != nil {
			h.logger.Warn("recurrence rollover failed; task left Done",
				"task_id", id,
				"owner", username,
				"error", err)
			shared.RespondWithJSON(w, r, http.StatusOK, SetStatusResponse{
				Task:           NewTaskResponse(task),
				RolloverFailed: true,
			})
			return
		}
		h.respondServiceError(w, r, err, "failed to update task status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SetStatusResponse{Task: NewTaskResponse(task)})
}

// getOwnedTask fetches a task and verifies the requester owns it. A task
// owned by another user responds 404 so foreign IDs are indistinguishable
// from absent ones. Returns false if an error response was written.
func (h *TaskHandler) getOwnedTask(
	w http.ResponseWriter,
	r *http.Request,
	id uuid.UUID,
	username string,
) (*domain.Task, bool) {
	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return nil, false
		}
		h.respondServiceError(w, r, err, "failed to fetch task")
		return nil, false
	}
	if task.Owner != username {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return nil, false
	}
	return task, true
}

// respondServiceError maps a service error to an HTTP response, logging
// server-side failures.
func (h *TaskHandler) respondServiceError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	logMsg string,
) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(logMsg, "error", err)
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}

// parseTaskEnums parses the three enum fields of a task payload against
// their closed sets, returning the first violation.
func parseTaskEnums(
	status, priority, recurrence string,
) (domain.Status, domain.Priority, domain.Recurrence, error) {
	s, err := domain.ParseStatus(status)
	if err != nil {
		return "", "", "", err
	}
	p, err := domain.ParsePriority(priority)
	if err != nil {
		return "", "", "", err
	}
	rec, err := domain.ParseRecurrence(recurrence)
	if err != nil {
		return "", "", "", err
	}
	return s, p, rec, nil
}
