package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TaskHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	UpdateSubtaskStatus(w http.ResponseWriter, r *http.Request)
	StartTimer(w http.ResponseWriter, r *http.Request)
	StopTimer(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &taskHandlerImpl{taskService: taskService}
}

// List implements TaskHandler.
func (h *taskHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.taskService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: int64(len(results))})
}

// Get implements TaskHandler.
func (h *taskHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateStatus implements TaskHandler. The new status shows until the next
// snapshot refresh.
func (h *taskHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req task.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.taskService.UpdateStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task status updated", result)
}

// UpdateSubtaskStatus implements TaskHandler.
func (h *taskHandlerImpl) UpdateSubtaskStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req task.UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.taskService.UpdateSubtaskStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Subtask status updated", result)
}

// StartTimer implements TaskHandler.
func (h *taskHandlerImpl) StartTimer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req task.TimerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.taskService.StartTimer(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timer started", result)
}

// StopTimer implements TaskHandler.
func (h *taskHandlerImpl) StopTimer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req task.TimerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.taskService.StopTimer(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timer stopped", result)
}
