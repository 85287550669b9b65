package task

import (
	"context"
	"encoding/json"
)

type TaskService interface {
	List(ctx context.Context) ([]TaskSummary, error)
	Get(ctx context.Context, id string) (TaskDetail, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (TaskSummary, error)
	UpdateSubtaskStatus(ctx context.Context, subtaskID string, req UpdateStatusRequest) (json.RawMessage, error)
	StartTimer(ctx context.Context, taskID string, req TimerRequest) (json.RawMessage, error)
	StopTimer(ctx context.Context, taskID string, req TimerRequest) (json.RawMessage, error)
}

// TaskRepository is the backend surface for task actions.
type TaskRepository interface {
	UpdateSubtaskStatus(ctx context.Context, subtaskID string, payload SubtaskStatusPayload) (json.RawMessage, error)
	StartTimeEntry(ctx context.Context, payload StartTimeEntryPayload) (json.RawMessage, error)
	StopTimeEntry(ctx context.Context, entryID string, payload StopTimeEntryPayload) (json.RawMessage, error)
	CreateDocument(ctx context.Context, payload DocumentPayload) (json.RawMessage, error)
}
