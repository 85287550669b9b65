package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

const (
	minDays = 1
	maxDays = 365
)

type PerformanceServiceImpl struct {
	snapshots user.SnapshotService
	history   performance.HistoryRepository
	location  *time.Location
	now       func() time.Time
}

// NewPerformanceService creates the history reader. history may be nil, in
// which case History reports performance.ErrHistoryUnavailable.
func NewPerformanceService(snapshots user.SnapshotService, history performance.HistoryRepository, location *time.Location) performance.PerformanceService {
	return newPerformanceService(snapshots, history, location)
}

func newPerformanceService(snapshots user.SnapshotService, history performance.HistoryRepository, location *time.Location) *PerformanceServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &PerformanceServiceImpl{
		snapshots: snapshots,
		history:   history,
		location:  location,
		now:       time.Now,
	}
}

// History returns the stored daily statistics of the last days days,
// today included.
func (s *PerformanceServiceImpl) History(ctx context.Context, days int) (performance.HistoryResponse, error) {
	if days < minDays || days > maxDays {
		return performance.HistoryResponse{}, performance.ErrInvalidRange
	}
	if s.history == nil {
		return performance.HistoryResponse{}, performance.ErrHistoryUnavailable
	}

	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return performance.HistoryResponse{}, fmt.Errorf("%w: %v", user.ErrUnauthenticated, err)
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return performance.HistoryResponse{}, err
	}
	loc := snap.User.Location(s.location)
	now := s.now().In(loc)

	// Days are stored as the user-local calendar date at UTC midnight.
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -(days - 1))

	rows, err := s.history.ListByUser(ctx, userID, from)
	if err != nil {
		return performance.HistoryResponse{}, fmt.Errorf("failed to list performance history: %w", err)
	}

	points := BuildPoints(rows)
	return performance.HistoryResponse{
		From:     from,
		To:       to,
		Points:   points,
		Trend:    Trend(points),
		Overtime: SummarizeOvertime(snap.User.AttendanceRecords(), now, loc),
	}, nil
}

// BuildPoints converts stored rows to chart points in day order.
func BuildPoints(rows []performance.Snapshot) []performance.HistoryPoint {
	points := make([]performance.HistoryPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, performance.HistoryPoint{
			Day:                r.Day.Format(time.DateOnly),
			Source:             r.Source,
			PerformanceScore:   r.Stats.PerformanceScore,
			Attendance:         r.Stats.Attendance,
			TaskCompletionRate: r.Stats.TaskCompletionRate,
			ProductivityScore:  r.Stats.ProductivityScore,
			OvertimeHours:      r.Stats.OvertimeHours,
		})
	}
	return points
}

// Trend is the change in performance score from the first to the last
// point, zero with fewer than two points.
func Trend(points []performance.HistoryPoint) float64 {
	if len(points) < 2 {
		return 0
	}
	return utils.RoundTo(points[len(points)-1].PerformanceScore-points[0].PerformanceScore, 1)
}

// SummarizeOvertime buckets record overtime by the record's month in loc.
func SummarizeOvertime(records []attendance.AttendanceRecord, now time.Time, loc *time.Location) performance.OvertimeSummary {
	now = now.In(loc)
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	lastMonth := thisMonth.AddDate(0, -1, 0)

	var sum performance.OvertimeSummary
	for _, r := range records {
		hours := r.OvertimeHours.Float64()
		if hours == 0 {
			continue
		}
		d := r.Date.In(loc)
		switch {
		case !d.Before(thisMonth):
			sum.ThisMonth += hours
		case !d.Before(lastMonth):
			sum.LastMonth += hours
		}
		if d.Year() == now.Year() {
			sum.YearToDate += hours
		}
	}

	sum.ThisMonth = utils.RoundTo(sum.ThisMonth, 2)
	sum.LastMonth = utils.RoundTo(sum.LastMonth, 2)
	sum.YearToDate = utils.RoundTo(sum.YearToDate, 2)
	return sum
}
