package project

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/project"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshots struct {
	snap      user.Snapshot
	refreshes int
}

func (f *fakeSnapshots) Current(ctx context.Context) (user.Snapshot, error) { return f.snap, nil }

func (f *fakeSnapshots) Refresh(ctx context.Context) (user.Snapshot, error) {
	f.refreshes++
	return f.snap, nil
}

func (f *fakeSnapshots) RefreshAll(ctx context.Context) error { return nil }

func (f *fakeSnapshots) OverrideTaskStatus(ctx context.Context, taskID string, status task.Status) (user.Snapshot, error) {
	return f.snap, nil
}

type fakeProjectRepo struct {
	comments []project.CommentPayload
	workLogs []project.WorkLogPayload
	deleted  []string
	err      error
}

func (f *fakeProjectRepo) CreateComment(ctx context.Context, p project.CommentPayload) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.comments = append(f.comments, p)
	return json.RawMessage(`{"id":"c-1"}`), nil
}

func (f *fakeProjectRepo) CreateWorkLog(ctx context.Context, p project.WorkLogPayload) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.workLogs = append(f.workLogs, p)
	return json.RawMessage(`{"id":"wl-1"}`), nil
}

func (f *fakeProjectRepo) DeleteNote(ctx context.Context, noteID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, noteID)
	return nil
}

func ptr[T any](v T) *T { return &v }

func sampleUser() user.User {
	gridUpgrade := project.Project{
		ID:            "p1",
		ProjectNumber: "PRJ-001",
		Title:         "Grid Upgrade",
		Status:        project.StatusPlanning,
		Manager:       &project.Named{Name: "Naledi Dube"},
		Client:        &project.Named{Name: "City Power"},
		Budget:        250000,
		Tasks: []project.ProjectTask{
			{ID: "pt1", Title: "Survey", Status: task.StatusCompleted, Assignees: []project.Assignee{{FirstName: "Thabo"}},
				TimeEntries: []task.TimeEntry{{Hours: 2.25}, {Hours: 1}}},
			{ID: "pt2", Title: "Design", Status: task.StatusTodo},
			{ID: "pt3", Title: "Build", Status: task.StatusInProgress},
		},
		TimeEntries: []task.TimeEntry{{Hours: 0.5}},
		Folders: []project.Folder{
			{ID: "f1", Documents: []project.FolderDocument{{ID: "d1", Name: "SLD.pdf", Type: "PDF"}}, Notes: []project.Note{{ID: "n1", Title: "Kickoff"}}},
			{ID: "f2", Notes: []project.Note{{ID: "n2", Title: "Risks"}}},
		},
		TeamMembers: []project.TeamMember{{UserID: "u2", User: &project.Named{Name: "Lerato"}}},
		WorkLogs:    make([]struct{}, 2),
		Comments:    []task.Comment{{ID: "c1", Content: "Go"}},
	}
	solar := project.Project{ID: "p2", Title: "Solar Farm", Status: project.StatusActive, Progress: 40}
	return user.User{
		ID:       "db-u1",
		Name:     "Thabo Nkosi",
		Projects: []project.Project{gridUpgrade},
		ProjectTeams: []project.ProjectTeam{
			{ID: "pt-a", Project: &gridUpgrade},
			{ID: "pt-b", Project: &solar},
			{ID: "pt-c"},
		},
	}
}

func TestBuildSummaries(t *testing.T) {
	summaries := BuildSummaries(sampleUser())
	require.Len(t, summaries, 2)

	solar := summaries[0]
	assert.Equal(t, "p2", solar.ID)
	assert.Equal(t, project.RoleMember, solar.Role)
	assert.Equal(t, 40.0, solar.Progress)
	assert.Equal(t, "N/A", solar.ProjectNumber)
	assert.Equal(t, "Internal", solar.ClientName)
	assert.Equal(t, "Unassigned Manager", solar.ManagerName)
	assert.Equal(t, task.PriorityMedium, solar.Priority)

	grid := summaries[1]
	assert.Equal(t, project.RoleManager, grid.Role)
	assert.Equal(t, 33.0, grid.Progress)
	assert.Equal(t, project.TaskCount{Total: 3, Completed: 1}, grid.TaskCount)
}

func TestBuildDetail(t *testing.T) {
	d := BuildDetail(sampleUser().Projects[0])

	assert.Equal(t, "No description provided.", d.Description)
	assert.Equal(t, 33.0, d.Progress)
	assert.Equal(t, project.Financial{Budget: 250000, Currency: "ZAR"}, d.Financial)
	assert.Equal(t, "Naledi Dube", d.Team.ManagerName)
	assert.Equal(t, "City Power", d.Team.ClientName)
	assert.Equal(t, []project.Member{{Name: "Lerato", Role: "Member", UserID: "u2"}}, d.Team.Members)

	require.Len(t, d.Tasks, 3)
	assert.Equal(t, "Thabo", d.Tasks[0].Assignee)
	assert.Equal(t, "Unassigned", d.Tasks[1].Assignee)

	assert.Len(t, d.Files.Documents, 1)
	assert.Len(t, d.Files.Notes, 2)
	assert.Equal(t, 2, d.Files.TotalFolders)

	assert.Equal(t, project.Logs{
		TotalTasks:      3,
		TasksCompleted:  1,
		TotalTimeLogged: 3.8,
		TotalWorkLogs:   2,
		TotalComments:   1,
		TotalTools:      0,
	}, d.Logs)
}

func TestBuildDetail_Fallbacks(t *testing.T) {
	d := BuildDetail(project.Project{ID: "p9", Description: ptr("")})

	assert.Equal(t, "N/A", d.ProjectNumber)
	assert.Equal(t, "Unknown", d.Team.ManagerName)
	assert.Equal(t, "Internal Client", d.Team.ClientName)
	assert.Equal(t, 0.0, d.Progress)
	assert.NotNil(t, d.Files.Documents)
	assert.NotNil(t, d.Comments)
}

func TestProjectService_Get(t *testing.T) {
	svc := NewProjectService(&fakeSnapshots{snap: user.Snapshot{User: sampleUser()}}, &fakeProjectRepo{})

	d, err := svc.Get(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "Solar Farm", d.Title)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_AddComment(t *testing.T) {
	snaps := &fakeSnapshots{snap: user.Snapshot{User: sampleUser()}}
	repo := &fakeProjectRepo{}
	svc := NewProjectService(snaps, repo)

	_, err := svc.AddComment(context.Background(), "p1", project.AddCommentRequest{Content: "  Looks good  "})
	require.NoError(t, err)
	assert.Equal(t, []project.CommentPayload{{
		ProjectID:     "p1",
		Content:       "Looks good",
		CommenterID:   "db-u1",
		CommenterName: "Thabo Nkosi",
	}}, repo.comments)
	assert.Equal(t, 1, snaps.refreshes)

	_, err = svc.AddComment(context.Background(), "missing", project.AddCommentRequest{Content: "x"})
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
}

func TestProjectService_AddWorkLog(t *testing.T) {
	snaps := &fakeSnapshots{snap: user.Snapshot{User: sampleUser()}}
	repo := &fakeProjectRepo{}
	svc := NewProjectService(snaps, repo).(*ProjectServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC) }

	_, err := svc.AddWorkLog(context.Background(), "p2", project.AddWorkLogRequest{Hours: 2.5, Description: "Panel install"})
	require.NoError(t, err)
	assert.Equal(t, []project.WorkLogPayload{{
		ProjectID:   "p2",
		UserID:      "db-u1",
		Hours:       2.5,
		Description: "Panel install",
		Date:        "2026-03-11T08:00:00.000Z",
	}}, repo.workLogs)

	_, err = svc.AddWorkLog(context.Background(), "p2", project.AddWorkLogRequest{Hours: 30})
	assert.Error(t, err)
	assert.Len(t, repo.workLogs, 1)
}

func TestProjectService_DeleteNote(t *testing.T) {
	snaps := &fakeSnapshots{}
	repo := &fakeProjectRepo{}
	svc := NewProjectService(snaps, repo)

	require.NoError(t, svc.DeleteNote(context.Background(), "n1"))
	assert.Equal(t, []string{"n1"}, repo.deleted)
	assert.Equal(t, 1, snaps.refreshes)

	upstream := errors.New("Failed to delete note")
	err := NewProjectService(snaps, &fakeProjectRepo{err: upstream}).DeleteNote(context.Background(), "n1")
	assert.ErrorIs(t, err, upstream)
}
