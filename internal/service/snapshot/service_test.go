package snapshot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/backend"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/jwt/jwttest"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]user.User
	errs   map[string]error
	calls  map[string]int
	tokens []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[string]user.User),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

func (f *fakeUserRepo) GetUser(ctx context.Context, userID string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[userID]++
	token, _ := backend.TokenFromContext(ctx)
	f.tokens = append(f.tokens, token)
	if err := f.errs[userID]; err != nil {
		return user.User{}, err
	}
	u, ok := f.users[userID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakeHistory struct {
	performance.HistoryRepository
	mu        sync.Mutex
	snapshots []performance.Snapshot
	batches   [][]performance.Snapshot
	err       error
}

func (f *fakeHistory) UpsertMany(ctx context.Context, snapshots []performance.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, snapshots)
	return f.err
}

func (f *fakeHistory) Upsert(ctx context.Context, s performance.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, s)
	return f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []sse.Event
}

func (f *fakePublisher) Publish(userID string, event sse.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	event.UserID = userID
	f.events = append(f.events, event)
}

func (f *fakePublisher) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, e := range f.events {
		out = append(out, e.Event)
	}
	return out
}

func authCtx(userID, token string) context.Context {
	return backend.WithToken(jwttest.ContextWithUserID(context.Background(), userID), token)
}

func sampleUser(id string) user.User {
	return user.User{
		ID:       "db-" + id,
		UserID:   id,
		Name:     "Thabo Nkosi",
		Timezone: "Africa/Johannesburg",
		Employee: &user.Employee{
			EmployeeNumber: "EMP-1",
			AssignedTasks: []task.Task{
				{ID: "t1", Title: "Wire panel", Status: task.StatusInProgress},
			},
		},
	}
}

func newService(repo *fakeUserRepo, history performance.HistoryRepository, pub *fakePublisher) *SnapshotServiceImpl {
	svc := NewSnapshotService(repo, history, pub, time.UTC, 4)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC) }
	return svc
}

func TestCurrent_FetchesOnceThenServesStored(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = sampleUser("u1")
	pub := &fakePublisher{}
	svc := newService(repo, nil, pub)

	ctx := authCtx("u1", "tok-1")
	first, err := svc.Current(ctx)
	require.NoError(t, err)
	second, err := svc.Current(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Thabo Nkosi", first.User.Name)
	assert.Equal(t, first.FetchedAt, second.FetchedAt)
	assert.Equal(t, 1, repo.calls["u1"])
	assert.Equal(t, []string{sse.EventSnapshotRefreshed}, pub.names())
}

func TestCurrent_Unauthenticated(t *testing.T) {
	svc := newService(newFakeUserRepo(), nil, &fakePublisher{})

	_, err := svc.Current(context.Background())
	assert.ErrorIs(t, err, user.ErrUnauthenticated)

	_, err = svc.Current(jwttest.ContextWithUserID(context.Background(), "u1"))
	assert.ErrorIs(t, err, user.ErrUnauthenticated)
}

func TestRefresh_ClearsOverridesAndRecordsHistory(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = sampleUser("u1")
	history := &fakeHistory{}
	svc := newService(repo, history, &fakePublisher{})
	ctx := authCtx("u1", "tok-1")

	snap, err := svc.OverrideTaskStatus(ctx, "t1", task.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, snap.TaskOverrides["t1"])

	snap, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.TaskOverrides)
	assert.Equal(t, 2, repo.calls["u1"])

	require.Len(t, history.snapshots, 2)
	recorded := history.snapshots[1]
	assert.Equal(t, "u1", recorded.UserID)
	// 23:30 UTC is already the 11th in Johannesburg.
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), recorded.Day)
	assert.Equal(t, performance.SourceComputed, recorded.Source)
	assert.Equal(t, 1, recorded.Stats.TotalTasks)
}

func TestRefresh_HistoryFailureDoesNotFail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = sampleUser("u1")
	svc := newService(repo, &fakeHistory{err: errors.New("db down")}, &fakePublisher{})

	_, err := svc.Refresh(authCtx("u1", "tok-1"))
	assert.NoError(t, err)
}

func TestRefresh_FailureKeepsStoredSnapshot(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = sampleUser("u1")
	svc := newService(repo, nil, &fakePublisher{})
	ctx := authCtx("u1", "tok-1")

	before, err := svc.Current(ctx)
	require.NoError(t, err)

	repo.errs["u1"] = &backend.APIError{StatusCode: 500, Message: "boom"}
	_, err = svc.Refresh(ctx)
	require.Error(t, err)

	after, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.FetchedAt, after.FetchedAt)
}

func TestRefresh_UnauthorizedDropsSession(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = sampleUser("u1")
	svc := newService(repo, nil, &fakePublisher{})
	ctx := authCtx("u1", "tok-1")

	_, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, svc.SessionCount())

	repo.errs["u1"] = &backend.APIError{StatusCode: 401, Message: "Authentication required"}
	_, err = svc.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, 0, svc.SessionCount())
}

func TestOverrideTaskStatus(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = sampleUser("u1")
	pub := &fakePublisher{}
	svc := newService(repo, nil, pub)
	ctx := authCtx("u1", "tok-1")

	first, err := svc.OverrideTaskStatus(ctx, "t1", task.StatusReview)
	require.NoError(t, err)
	second, err := svc.OverrideTaskStatus(ctx, "t1", task.StatusCompleted)
	require.NoError(t, err)

	// Earlier snapshots are not mutated by later overrides.
	assert.Equal(t, task.StatusReview, first.TaskOverrides["t1"])
	assert.Equal(t, task.StatusCompleted, second.TaskOverrides["t1"])
	assert.Contains(t, pub.names(), sse.EventTaskStatusChanged)

	_, err = svc.OverrideTaskStatus(ctx, "missing", task.StatusCompleted)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestRefreshAll(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = sampleUser("u1")
	repo.users["u2"] = sampleUser("u2")
	svc := newService(repo, nil, &fakePublisher{})

	_, err := svc.Current(authCtx("u1", "tok-1"))
	require.NoError(t, err)
	_, err = svc.Current(authCtx("u2", "tok-2"))
	require.NoError(t, err)

	repo.errs["u2"] = errors.New("timeout")
	err = svc.RefreshAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh user u2")

	assert.Equal(t, 2, repo.calls["u1"])
	assert.Equal(t, 2, repo.calls["u2"])
	assert.ElementsMatch(t, []string{"tok-1", "tok-2", "tok-1", "tok-2"}, repo.tokens)
}

func TestRefreshAll_RecordsHistoryInOneBatch(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = sampleUser("u1")
	repo.users["u2"] = sampleUser("u2")
	repo.users["u3"] = sampleUser("u3")
	history := &fakeHistory{}
	svc := newService(repo, history, &fakePublisher{})

	for _, id := range []string{"u1", "u2", "u3"} {
		_, err := svc.Current(authCtx(id, "tok-"+id))
		require.NoError(t, err)
	}
	require.Len(t, history.snapshots, 3)

	repo.errs["u3"] = errors.New("timeout")
	require.Error(t, svc.RefreshAll(context.Background()))

	require.Len(t, history.batches, 1)
	var users []string
	for _, row := range history.batches[0] {
		users = append(users, row.UserID)
		assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), row.Day)
	}
	assert.ElementsMatch(t, []string{"u1", "u2"}, users)
	// Single upserts are only used outside the refresh cycle.
	assert.Len(t, history.snapshots, 3)
}

func TestRefreshAll_NoSessions(t *testing.T) {
	svc := newService(newFakeUserRepo(), nil, &fakePublisher{})
	assert.NoError(t, svc.RefreshAll(context.Background()))
}

func TestEvictIdle(t *testing.T) {
	repo := newFakeUserRepo()
	repo.users["u1"] = sampleUser("u1")
	svc := newService(repo, nil, &fakePublisher{})

	_, err := svc.Current(authCtx("u1", "tok-1"))
	require.NoError(t, err)

	assert.Equal(t, 0, svc.EvictIdle(time.Hour))

	svc.now = func() time.Time { return time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC) }
	assert.Equal(t, 1, svc.EvictIdle(time.Hour))
	assert.Equal(t, 0, svc.SessionCount())
}
