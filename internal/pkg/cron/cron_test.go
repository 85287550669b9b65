package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	refreshes atomic.Int32
	evicted   int
	err       error
}

func (f *fakeRefresher) RefreshAll(ctx context.Context) error {
	f.refreshes.Add(1)
	return f.err
}

func (f *fakeRefresher) EvictIdle(idleFor time.Duration) int {
	return f.evicted
}

func (f *fakeRefresher) SessionCount() int { return 4 }

type fakeStreams struct{ counted atomic.Int32 }

func (f *fakeStreams) TotalSubscribers() int {
	f.counted.Add(1)
	return 2
}

type fakeHistory struct {
	performance.HistoryRepository
	cutoff time.Time
}

func (f *fakeHistory) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 3, nil
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(context.Background())

	var ran []string
	s.AddJob("ok", time.Minute, 0, func(ctx context.Context) error {
		ran = append(ran, "ok")
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})
	s.AddJob("fails", time.Minute, time.Second, func(ctx context.Context) error {
		ran = append(ran, "fails")
		return errors.New("boom")
	})

	assert.Equal(t, 1, s.RunOnce(context.Background()))
	assert.Equal(t, []string{"ok", "fails"}, ran)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(context.Background())

	var runs atomic.Int32
	s.AddJob("tick", 10*time.Millisecond, 0, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load())
}

func TestSnapshotJobs(t *testing.T) {
	refresher := &fakeRefresher{evicted: 2}
	streams := &fakeStreams{}
	history := &fakeHistory{}
	jobs := NewSnapshotJobs(refresher, streams, history, 3*time.Minute, time.Hour, 30)
	jobs.now = func() time.Time { return time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC) }

	s := NewScheduler(context.Background())
	jobs.RegisterJobs(s)
	require.Len(t, s.jobs, 3)
	assert.Equal(t, 3*time.Minute, s.jobs[0].Interval)

	assert.Equal(t, 0, s.RunOnce(context.Background()))
	assert.Equal(t, int32(1), refresher.refreshes.Load())
	assert.Equal(t, int32(1), streams.counted.Load())
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), history.cutoff)
}

func TestSnapshotJobs_WithoutHistory(t *testing.T) {
	jobs := NewSnapshotJobs(&fakeRefresher{}, &fakeStreams{}, nil, time.Minute, 0, 30)

	s := NewScheduler(context.Background())
	jobs.RegisterJobs(s)
	require.Len(t, s.jobs, 1)
	assert.Equal(t, "refresh_user_snapshots", s.jobs[0].Name)
}
