package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

const (
	timerDescription = "Task work started"
	evidenceType     = "IMAGE"
	evidenceMimeType = "image/jpeg"
)

type TaskServiceImpl struct {
	snapshots user.SnapshotService
	task.TaskRepository
	location *time.Location
	now      func() time.Time
}

func NewTaskService(snapshots user.SnapshotService, taskRepo task.TaskRepository, location *time.Location) task.TaskService {
	return newTaskService(snapshots, taskRepo, location)
}

func newTaskService(snapshots user.SnapshotService, taskRepo task.TaskRepository, location *time.Location) *TaskServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &TaskServiceImpl{
		snapshots:      snapshots,
		TaskRepository: taskRepo,
		location:       location,
		now:            time.Now,
	}
}

// List implements task.TaskService.
func (s *TaskServiceImpl) List(ctx context.Context) ([]task.TaskSummary, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSummaries(snap.User.Tasks(), snap.TaskOverrides), nil
}

// Get implements task.TaskService.
func (s *TaskServiceImpl) Get(ctx context.Context, id string) (task.TaskDetail, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return task.TaskDetail{}, err
	}
	t, ok := findTask(snap.User, id)
	if !ok {
		return task.TaskDetail{}, task.ErrTaskNotFound
	}
	return BuildDetail(t, snap.TaskOverrides), nil
}

// UpdateStatus implements task.TaskService. The change is local to the
// session and is replaced by whatever the next refresh returns.
func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, id string, req task.UpdateStatusRequest) (task.TaskSummary, error) {
	if err := req.Validate(); err != nil {
		return task.TaskSummary{}, err
	}

	snap, err := s.snapshots.OverrideTaskStatus(ctx, id, req.Status)
	if err != nil {
		return task.TaskSummary{}, err
	}

	t, ok := findTask(snap.User, id)
	if !ok {
		return task.TaskSummary{}, task.ErrTaskNotFound
	}
	return ApplyOptimisticStatus(BuildSummary(t), req.Status), nil
}

// UpdateSubtaskStatus implements task.TaskService.
func (s *TaskServiceImpl) UpdateSubtaskStatus(ctx context.Context, subtaskID string, req task.UpdateStatusRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !hasSubtask(snap.User, subtaskID) {
		return nil, task.ErrSubtaskNotFound
	}

	result, err := s.TaskRepository.UpdateSubtaskStatus(ctx, subtaskID, task.SubtaskStatusPayload{Status: req.Status})
	if err != nil {
		return nil, fmt.Errorf("failed to update subtask %s: %w", subtaskID, err)
	}

	s.refresh(ctx)
	return result, nil
}

// StartTimer implements task.TaskService.
func (s *TaskServiceImpl) StartTimer(ctx context.Context, taskID string, req task.TimerRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := findTask(snap.User, taskID)
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	if _, running := t.ActiveTimeEntry(); running {
		return nil, task.ErrTimerAlreadyActive
	}

	now := s.now()
	result, err := s.TaskRepository.StartTimeEntry(ctx, task.StartTimeEntryPayload{
		TaskID:      taskID,
		UserID:      snap.User.ID,
		TimeIn:      utils.FormatISO(now),
		Date:        utils.FormatISO(now),
		Description: timerDescription,
		Hours:       0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start timer for task %s: %w", taskID, err)
	}

	s.saveEvidence(ctx, taskID, "Time In", req.PhotoURL, now.In(snap.User.Location(s.location)))
	s.refresh(ctx)
	return result, nil
}

// StopTimer implements task.TaskService.
func (s *TaskServiceImpl) StopTimer(ctx context.Context, taskID string, req task.TimerRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := findTask(snap.User, taskID)
	if !ok {
		return nil, task.ErrTaskNotFound
	}
	entry, running := t.ActiveTimeEntry()
	if !running {
		return nil, task.ErrNoActiveTimeEntry
	}

	now := s.now()
	result, err := s.TaskRepository.StopTimeEntry(ctx, entry.ID, task.StopTimeEntryPayload{
		TimeOut: utils.FormatISO(now),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to stop timer for task %s: %w", taskID, err)
	}

	s.saveEvidence(ctx, taskID, "Time Out", req.PhotoURL, now.In(snap.User.Location(s.location)))
	s.refresh(ctx)
	return result, nil
}

// saveEvidence attaches the photo to the task. The time entry is already
// recorded, so a failure here is only logged.
func (s *TaskServiceImpl) saveEvidence(ctx context.Context, taskID, label, photoURL string, at time.Time) {
	if photoURL == "" {
		return
	}
	_, err := s.TaskRepository.CreateDocument(ctx, task.DocumentPayload{
		Name:     fmt.Sprintf("%s - %s", label, at.Format("15:04:05")),
		URL:      photoURL,
		Type:     evidenceType,
		TaskID:   taskID,
		MimeType: evidenceMimeType,
	})
	if err != nil {
		slog.Warn("Failed to save time entry evidence", "task_id", taskID, "error", err)
	}
}

func (s *TaskServiceImpl) refresh(ctx context.Context) {
	if _, err := s.snapshots.Refresh(ctx); err != nil {
		slog.Warn("Snapshot refresh after task action failed", "error", err)
	}
}

func findTask(u user.User, id string) (task.Task, bool) {
	for _, t := range u.Tasks() {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

func hasSubtask(u user.User, subtaskID string) bool {
	for _, t := range u.Tasks() {
		for _, st := range t.Subtasks {
			if st.ID == subtaskID {
				return true
			}
		}
	}
	return false
}
