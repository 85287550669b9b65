package project

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/project"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

type ProjectServiceImpl struct {
	snapshots user.SnapshotService
	project.ProjectRepository
	now func() time.Time
}

func NewProjectService(snapshots user.SnapshotService, projectRepo project.ProjectRepository) project.ProjectService {
	return &ProjectServiceImpl{
		snapshots:         snapshots,
		ProjectRepository: projectRepo,
		now:               time.Now,
	}
}

// List implements project.ProjectService.
func (s *ProjectServiceImpl) List(ctx context.Context) ([]project.ProjectSummary, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSummaries(snap.User), nil
}

// Get implements project.ProjectService.
func (s *ProjectServiceImpl) Get(ctx context.Context, id string) (project.ProjectDetail, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return project.ProjectDetail{}, err
	}
	p, ok := findProject(snap.User, id)
	if !ok {
		return project.ProjectDetail{}, project.ErrProjectNotFound
	}
	return BuildDetail(p), nil
}

// AddComment implements project.ProjectService.
func (s *ProjectServiceImpl) AddComment(ctx context.Context, projectID string, req project.AddCommentRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := findProject(snap.User, projectID); !ok {
		return nil, project.ErrProjectNotFound
	}

	result, err := s.ProjectRepository.CreateComment(ctx, project.CommentPayload{
		ProjectID:     projectID,
		Content:       req.Content,
		CommenterID:   snap.User.ID,
		CommenterName: snap.User.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add comment to project %s: %w", projectID, err)
	}

	s.refresh(ctx)
	return result, nil
}

// AddWorkLog implements project.ProjectService.
func (s *ProjectServiceImpl) AddWorkLog(ctx context.Context, projectID string, req project.AddWorkLogRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := findProject(snap.User, projectID); !ok {
		return nil, project.ErrProjectNotFound
	}

	result, err := s.ProjectRepository.CreateWorkLog(ctx, project.WorkLogPayload{
		ProjectID:   projectID,
		UserID:      snap.User.ID,
		Hours:       req.Hours,
		Description: req.Description,
		Date:        utils.FormatISO(s.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log work on project %s: %w", projectID, err)
	}

	s.refresh(ctx)
	return result, nil
}

// DeleteNote implements project.ProjectService.
func (s *ProjectServiceImpl) DeleteNote(ctx context.Context, noteID string) error {
	if err := s.ProjectRepository.DeleteNote(ctx, noteID); err != nil {
		return fmt.Errorf("failed to delete note %s: %w", noteID, err)
	}
	s.refresh(ctx)
	return nil
}

func (s *ProjectServiceImpl) refresh(ctx context.Context) {
	if _, err := s.snapshots.Refresh(ctx); err != nil {
		slog.Warn("Snapshot refresh after project action failed", "error", err)
	}
}

func findProject(u user.User, id string) (project.Project, bool) {
	for _, p := range u.AllProjects() {
		if p.ID == id {
			return p, true
		}
	}
	return project.Project{}, false
}
