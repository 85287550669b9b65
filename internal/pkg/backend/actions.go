package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/leave"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/project"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
)

// ActionRepository forwards the app's write actions to the backend.
type ActionRepository struct {
	*Client
}

var (
	_ attendance.AttendanceRepository = (*ActionRepository)(nil)
	_ task.TaskRepository             = (*ActionRepository)(nil)
	_ leave.LeaveRepository           = (*ActionRepository)(nil)
	_ project.ProjectRepository       = (*ActionRepository)(nil)
)

func NewActionRepository(c *Client) *ActionRepository {
	return &ActionRepository{Client: c}
}

func (r *ActionRepository) CheckIn(ctx context.Context, payload attendance.Payload) (json.RawMessage, error) {
	return r.do(ctx, http.MethodPost, "/attendance/check-in", payload, "Check-in failed")
}

func (r *ActionRepository) CheckOut(ctx context.Context, recordID string, payload attendance.Payload) (json.RawMessage, error) {
	return r.do(ctx, http.MethodPatch, "/attendance/check-out/"+url.PathEscape(recordID), payload, "Check-out failed")
}

func (r *ActionRepository) CreateLeave(ctx context.Context, payload leave.CreatePayload) (json.RawMessage, error) {
	return r.do(ctx, http.MethodPost, "/leaves", payload, "Failed to submit leave request")
}

func (r *ActionRepository) CreateComment(ctx context.Context, payload project.CommentPayload) (json.RawMessage, error) {
	return r.do(ctx, http.MethodPost, "/comments", payload, "Failed to add comment")
}

func (r *ActionRepository) CreateWorkLog(ctx context.Context, payload project.WorkLogPayload) (json.RawMessage, error) {
	return r.do(ctx, http.MethodPost, "/work-logs", payload, "Failed to log work time")
}

func (r *ActionRepository) DeleteNote(ctx context.Context, noteID string) error {
	_, err := r.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(noteID), nil, "Failed to delete note")
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		// Delete failures always surface the generic message.
		apiErr.Message = "Failed to delete note"
	}
	return err
}

func (r *ActionRepository) UpdateSubtaskStatus(ctx context.Context, subtaskID string, payload task.SubtaskStatusPayload) (json.RawMessage, error) {
	return r.do(ctx, http.MethodPatch, "/subtasksMobile/"+url.PathEscape(subtaskID), payload, "Failed to update subtask")
}

func (r *ActionRepository) StartTimeEntry(ctx context.Context, payload task.StartTimeEntryPayload) (json.RawMessage, error) {
	return r.do(ctx, http.MethodPost, "/time-entries-mobile", payload, "Failed to start timer")
}

func (r *ActionRepository) StopTimeEntry(ctx context.Context, entryID string, payload task.StopTimeEntryPayload) (json.RawMessage, error) {
	return r.do(ctx, http.MethodPatch, "/time-entries-mobile/"+url.PathEscape(entryID), payload, "Failed to stop timer")
}

func (r *ActionRepository) CreateDocument(ctx context.Context, payload task.DocumentPayload) (json.RawMessage, error) {
	return r.do(ctx, http.MethodPost, "/documents", payload, "Failed to save document")
}
