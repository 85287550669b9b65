package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
)

// SnapshotRefresher is the part of the snapshot service the jobs drive.
type SnapshotRefresher interface {
	RefreshAll(ctx context.Context) error
	EvictIdle(idleFor time.Duration) int
	SessionCount() int
}

// StreamCounter reports open event streams.
type StreamCounter interface {
	TotalSubscribers() int
}

type SnapshotJobs struct {
	snapshots       SnapshotRefresher
	streams         StreamCounter
	history         performance.HistoryRepository
	refreshInterval time.Duration
	sessionTTL      time.Duration
	retentionDays   int
	now             func() time.Time
}

// NewSnapshotJobs wires the background refresh. history may be nil when
// performance history is disabled.
func NewSnapshotJobs(
	snapshots SnapshotRefresher,
	streams StreamCounter,
	history performance.HistoryRepository,
	refreshInterval time.Duration,
	sessionTTL time.Duration,
	retentionDays int,
) *SnapshotJobs {
	return &SnapshotJobs{
		snapshots:       snapshots,
		streams:         streams,
		history:         history,
		refreshInterval: refreshInterval,
		sessionTTL:      sessionTTL,
		retentionDays:   retentionDays,
		now:             time.Now,
	}
}

func (j *SnapshotJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("refresh_user_snapshots", j.refreshInterval, 0, j.RefreshSnapshots)
	if j.sessionTTL > 0 {
		scheduler.AddJob("evict_idle_sessions", 10*time.Minute, time.Minute, j.EvictIdleSessions)
	}
	if j.history != nil && j.retentionDays > 0 {
		scheduler.AddJob("prune_performance_history", 24*time.Hour, 5*time.Minute, j.PrunePerformanceHistory)
	}
}

// RefreshSnapshots re-fetches every active session's user record.
func (j *SnapshotJobs) RefreshSnapshots(ctx context.Context) error {
	err := j.snapshots.RefreshAll(ctx)
	slog.Debug("Cron: refreshed snapshots",
		"sessions", j.snapshots.SessionCount(),
		"streams", j.streams.TotalSubscribers(),
	)
	return err
}

func (j *SnapshotJobs) EvictIdleSessions(ctx context.Context) error {
	if n := j.snapshots.EvictIdle(j.sessionTTL); n > 0 {
		slog.Info("Cron: evicted idle sessions", "count", n, "remaining", j.snapshots.SessionCount())
	}
	return nil
}

func (j *SnapshotJobs) PrunePerformanceHistory(ctx context.Context) error {
	cutoff := j.now().UTC().AddDate(0, 0, -j.retentionDays)
	deleted, err := j.history.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	slog.Info("Cron: pruned performance history", "deleted", deleted, "cutoff", cutoff.Format("2006-01-02"))
	return nil
}
