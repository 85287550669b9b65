package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/project"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ProjectHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	AddComment(w http.ResponseWriter, r *http.Request)
	AddWorkLog(w http.ResponseWriter, r *http.Request)
	DeleteNote(w http.ResponseWriter, r *http.Request)
}

type projectHandlerImpl struct {
	projectService project.ProjectService
}

func NewProjectHandler(projectService project.ProjectService) ProjectHandler {
	return &projectHandlerImpl{projectService: projectService}
}

// List implements ProjectHandler.
func (h *projectHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.projectService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, results, &response.Meta{TotalItems: int64(len(results))})
}

// Get implements ProjectHandler.
func (h *projectHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.projectService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AddComment implements ProjectHandler.
func (h *projectHandlerImpl) AddComment(w http.ResponseWriter, r *http.Request) {
	var req project.AddCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.projectService.AddComment(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comment added", result)
}

// AddWorkLog implements ProjectHandler.
func (h *projectHandlerImpl) AddWorkLog(w http.ResponseWriter, r *http.Request) {
	var req project.AddWorkLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.projectService.AddWorkLog(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work log added", result)
}

// DeleteNote implements ProjectHandler.
func (h *projectHandlerImpl) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.projectService.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Note deleted", nil)
}
