package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	attendancesvc "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/service/statistics"
	"golang.org/x/sync/errgroup"
)

const trendDays = 7

type DashboardServiceImpl struct {
	snapshots   user.SnapshotService
	performance performance.PerformanceService
	location    *time.Location
	now         func() time.Time
}

// NewDashboardService creates the dashboard composer. performanceService
// may be nil when history is disabled.
func NewDashboardService(snapshots user.SnapshotService, performanceService performance.PerformanceService, location *time.Location) dashboard.DashboardService {
	return newDashboardService(snapshots, performanceService, location)
}

func newDashboardService(snapshots user.SnapshotService, performanceService performance.PerformanceService, location *time.Location) *DashboardServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &DashboardServiceImpl{
		snapshots:   snapshots,
		performance: performanceService,
		location:    location,
		now:         time.Now,
	}
}

// GetDashboard loads the snapshot and the recent trend in parallel, then
// derives every section from the one snapshot.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (dashboard.DashboardResponse, error) {
	var (
		snap  user.Snapshot
		trend []performance.HistoryPoint
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Snapshot
	g.Go(func() error {
		var err error
		snap, err = s.snapshots.Current(gCtx)
		return err
	})

	// 2. Trend, best effort
	g.Go(func() error {
		trend = s.loadTrend(gCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	u := snap.User
	now := s.now()
	loc := u.Location(s.location)
	tasks := withOverrides(u.Tasks(), snap.TaskOverrides)

	return dashboard.DashboardResponse{
		Stats:      BuildStats(u, tasks, now, loc),
		Today:      attendancesvc.TodayStatus(u, now, loc),
		Week:       attendancesvc.WeeklyStats(u, now, loc),
		Deadlines:  BuildDeadlines(tasks, now),
		Activity:   BuildActivity(u, tasks),
		Statistics: performance.NewStatisticsResponse(statistics.Resolve(u)),
		Trend:      trend,
		FetchedAt:  snap.FetchedAt,
	}, nil
}

func (s *DashboardServiceImpl) loadTrend(ctx context.Context) []performance.HistoryPoint {
	if s.performance == nil {
		return []performance.HistoryPoint{}
	}
	history, err := s.performance.History(ctx, trendDays)
	if err != nil {
		if !errors.Is(err, performance.ErrHistoryUnavailable) && !errors.Is(err, context.Canceled) {
			slog.Warn("Failed to load performance trend", "error", err)
		}
		return []performance.HistoryPoint{}
	}
	return history.Points
}
