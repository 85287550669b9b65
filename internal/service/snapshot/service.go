package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/backend"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/service/statistics"
	"golang.org/x/sync/errgroup"
)

// Publisher pushes events to a user's open streams.
type Publisher interface {
	Publish(userID string, event sse.Event)
}

type session struct {
	token    string
	snapshot user.Snapshot
	fetched  bool
	lastSeen time.Time
}

type SnapshotServiceImpl struct {
	userRepo    user.UserRepository
	history     performance.HistoryRepository
	publisher   Publisher
	location    *time.Location
	concurrency int
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// NewSnapshotService creates the per-session snapshot store. history may be
// nil, in which case refreshes are not recorded.
func NewSnapshotService(
	userRepo user.UserRepository,
	history performance.HistoryRepository,
	publisher Publisher,
	location *time.Location,
	concurrency int,
) *SnapshotServiceImpl {
	if location == nil {
		location = time.UTC
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &SnapshotServiceImpl{
		userRepo:    userRepo,
		history:     history,
		publisher:   publisher,
		location:    location,
		concurrency: concurrency,
		now:         time.Now,
		sessions:    make(map[string]*session),
	}
}

// Current implements user.SnapshotService.
func (s *SnapshotServiceImpl) Current(ctx context.Context) (user.Snapshot, error) {
	userID, token, err := identify(ctx)
	if err != nil {
		return user.Snapshot{}, err
	}

	s.mu.Lock()
	sess := s.touch(userID, token)
	if sess.fetched {
		snap := sess.snapshot
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	return s.refresh(ctx, userID)
}

// Refresh implements user.SnapshotService.
func (s *SnapshotServiceImpl) Refresh(ctx context.Context) (user.Snapshot, error) {
	userID, token, err := identify(ctx)
	if err != nil {
		return user.Snapshot{}, err
	}

	s.mu.Lock()
	s.touch(userID, token)
	s.mu.Unlock()

	return s.refresh(ctx, userID)
}

// RefreshAll implements user.SnapshotService. Failures are collected so one
// bad session does not stop the others. The cycle's history rows are
// written in one batch.
func (s *SnapshotServiceImpl) RefreshAll(ctx context.Context) error {
	type target struct{ userID, token string }

	s.mu.Lock()
	targets := make([]target, 0, len(s.sessions))
	for userID, sess := range s.sessions {
		targets = append(targets, target{userID: userID, token: sess.token})
	}
	s.mu.Unlock()

	if len(targets) == 0 {
		return nil
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
		rows []performance.Snapshot
	)
	g.SetLimit(s.concurrency)

	for _, t := range targets {
		g.Go(func() error {
			_, row, err := s.fetch(backend.WithToken(ctx, t.token), t.userID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, fmt.Errorf("refresh user %s: %w", t.userID, err))
				return nil
			}
			rows = append(rows, row)
			return nil
		})
	}
	_ = g.Wait()

	if s.history != nil && len(rows) > 0 {
		if err := s.history.UpsertMany(ctx, rows); err != nil {
			slog.Warn("Failed to record performance snapshots", "count", len(rows), "error", err)
		}
	}

	slog.Debug("Snapshots refreshed", "sessions", len(targets), "failed", len(errs))
	return errors.Join(errs...)
}

// OverrideTaskStatus implements user.SnapshotService.
func (s *SnapshotServiceImpl) OverrideTaskStatus(ctx context.Context, taskID string, status task.Status) (user.Snapshot, error) {
	userID, token, err := identify(ctx)
	if err != nil {
		return user.Snapshot{}, err
	}
	current, err := s.Current(ctx)
	if err != nil {
		return user.Snapshot{}, err
	}
	if !hasTask(current.User, taskID) {
		return user.Snapshot{}, task.ErrTaskNotFound
	}

	s.mu.Lock()
	sess := s.touch(userID, token)
	if !sess.fetched {
		sess.snapshot = current
		sess.fetched = true
	}

	// Copy on write: snapshots already handed out keep their own map.
	overrides := make(map[string]task.Status, len(sess.snapshot.TaskOverrides)+1)
	maps.Copy(overrides, sess.snapshot.TaskOverrides)
	overrides[taskID] = status
	sess.snapshot.TaskOverrides = overrides
	snap := sess.snapshot
	s.mu.Unlock()

	s.publisher.Publish(userID, sse.Event{
		Event: sse.EventTaskStatusChanged,
		Data: map[string]interface{}{
			"task_id": taskID,
			"status":  status,
		},
	})

	return snap, nil
}

// EvictIdle forgets sessions not seen for idleFor and returns how many
// were dropped.
func (s *SnapshotServiceImpl) EvictIdle(idleFor time.Duration) int {
	cutoff := s.now().Add(-idleFor)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for userID, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, userID)
			evicted++
		}
	}
	return evicted
}

// SessionCount returns the number of tracked sessions.
func (s *SnapshotServiceImpl) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// touch registers the caller's session and remembers its latest token.
// Callers must hold s.mu.
func (s *SnapshotServiceImpl) touch(userID, token string) *session {
	sess, ok := s.sessions[userID]
	if !ok {
		sess = &session{}
		s.sessions[userID] = sess
	}
	sess.token = token
	sess.lastSeen = s.now()
	return sess
}

// refresh fetches the record, replaces the stored snapshot and records
// today's statistics.
func (s *SnapshotServiceImpl) refresh(ctx context.Context, userID string) (user.Snapshot, error) {
	snap, row, err := s.fetch(ctx, userID)
	if err != nil {
		return user.Snapshot{}, err
	}
	if s.history != nil {
		if err := s.history.Upsert(ctx, row); err != nil {
			slog.Warn("Failed to record performance snapshot", "user_id", userID, "error", err)
		}
	}
	return snap, nil
}

// fetch replaces the stored snapshot and returns it with its history row.
// Concurrent fetches are not coalesced; the last one to finish wins.
func (s *SnapshotServiceImpl) fetch(ctx context.Context, userID string) (user.Snapshot, performance.Snapshot, error) {
	u, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			s.mu.Lock()
			delete(s.sessions, userID)
			s.mu.Unlock()
			slog.Info("Session dropped after rejected token", "user_id", userID)
		}
		return user.Snapshot{}, performance.Snapshot{}, err
	}

	snap := user.Snapshot{User: u, FetchedAt: s.now()}

	s.mu.Lock()
	sess, ok := s.sessions[userID]
	if ok {
		sess.snapshot = snap
		sess.fetched = true
	}
	s.mu.Unlock()

	stats := statistics.Resolve(u)

	s.publisher.Publish(userID, sse.Event{
		Event: sse.EventSnapshotRefreshed,
		Data: map[string]interface{}{
			"fetched_at": snap.FetchedAt,
			"statistics": performance.NewStatisticsResponse(stats),
		},
	})

	return snap, s.historyRow(userID, u, stats, snap.FetchedAt), nil
}

// historyRow keys the statistics by the user's local calendar day.
func (s *SnapshotServiceImpl) historyRow(userID string, u user.User, stats performance.Statistics, at time.Time) performance.Snapshot {
	local := at.In(u.Location(s.location))
	return performance.Snapshot{
		UserID:     userID,
		Day:        time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC),
		Source:     stats.Source(),
		Stats:      stats.Profile(),
		RecordedAt: at,
	}
}

func identify(ctx context.Context) (userID, token string, err error) {
	userID, err = jwt.UserIDFromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", user.ErrUnauthenticated, err)
	}
	token, ok := backend.TokenFromContext(ctx)
	if !ok {
		return "", "", user.ErrUnauthenticated
	}
	return userID, token, nil
}

func hasTask(u user.User, taskID string) bool {
	for _, t := range u.Tasks() {
		if t.ID == taskID {
			return true
		}
	}
	return false
}
