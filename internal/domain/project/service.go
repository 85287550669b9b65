package project

import (
	"context"
	"encoding/json"
)

type ProjectService interface {
	List(ctx context.Context) ([]ProjectSummary, error)
	Get(ctx context.Context, id string) (ProjectDetail, error)
	AddComment(ctx context.Context, projectID string, req AddCommentRequest) (json.RawMessage, error)
	AddWorkLog(ctx context.Context, projectID string, req AddWorkLogRequest) (json.RawMessage, error)
	DeleteNote(ctx context.Context, noteID string) error
}

type ProjectRepository interface {
	CreateComment(ctx context.Context, payload CommentPayload) (json.RawMessage, error)
	CreateWorkLog(ctx context.Context, payload WorkLogPayload) (json.RawMessage, error)
	DeleteNote(ctx context.Context, noteID string) error
}
