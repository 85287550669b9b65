package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/database"
)

type performanceSnapshotRepositoryImpl struct {
	db database.Pool
}

func NewPerformanceSnapshotRepository(db database.Pool) performance.HistoryRepository {
	return &performanceSnapshotRepositoryImpl{db: db}
}

const upsertSnapshotQuery = `
	INSERT INTO performance_snapshots (
		user_id, day, source, attendance, task_completion_rate, productivity_score,
		project_contribution_score, teamwork_score, performance_score,
		tasks_completed, total_tasks, total_hours, overtime_hours,
		active_projects, total_projects, used_leave_days, remaining_leave_days, recorded_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	ON CONFLICT (user_id, day) DO UPDATE SET
		source = EXCLUDED.source,
		attendance = EXCLUDED.attendance,
		task_completion_rate = EXCLUDED.task_completion_rate,
		productivity_score = EXCLUDED.productivity_score,
		project_contribution_score = EXCLUDED.project_contribution_score,
		teamwork_score = EXCLUDED.teamwork_score,
		performance_score = EXCLUDED.performance_score,
		tasks_completed = EXCLUDED.tasks_completed,
		total_tasks = EXCLUDED.total_tasks,
		total_hours = EXCLUDED.total_hours,
		overtime_hours = EXCLUDED.overtime_hours,
		active_projects = EXCLUDED.active_projects,
		total_projects = EXCLUDED.total_projects,
		used_leave_days = EXCLUDED.used_leave_days,
		remaining_leave_days = EXCLUDED.remaining_leave_days,
		recorded_at = EXCLUDED.recorded_at
`

// Upsert implements performance.HistoryRepository. One row per user per day,
// the latest refresh of the day wins.
func (r *performanceSnapshotRepositoryImpl) Upsert(ctx context.Context, s performance.Snapshot) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, upsertSnapshotQuery,
		s.UserID,
		s.Day,
		string(s.Source),
		s.Stats.Attendance,
		s.Stats.TaskCompletionRate,
		s.Stats.ProductivityScore,
		s.Stats.ProjectContributionScore,
		s.Stats.TeamworkScore,
		s.Stats.PerformanceScore,
		s.Stats.TasksCompleted,
		s.Stats.TotalTasks,
		s.Stats.TotalHoursThisMonth,
		s.Stats.OvertimeHours,
		s.Stats.ActiveProjects,
		s.Stats.TotalProjects,
		s.Stats.UsedLeaveDays,
		s.Stats.RemainingLeaveDays,
		s.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert performance snapshot: %w", err)
	}
	return nil
}

// UpsertMany implements performance.HistoryRepository. All rows are written
// in one transaction, so a refresh cycle is recorded whole or not at all.
func (r *performanceSnapshotRepositoryImpl) UpsertMany(ctx context.Context, snapshots []performance.Snapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		for _, s := range snapshots {
			if err := r.Upsert(ctx, s); err != nil {
				return fmt.Errorf("user %s: %w", s.UserID, err)
			}
		}
		return nil
	})
}

const listSnapshotsQuery = `
	SELECT user_id, day, source, attendance, task_completion_rate, productivity_score,
		project_contribution_score, teamwork_score, performance_score,
		tasks_completed, total_tasks, total_hours, overtime_hours,
		active_projects, total_projects, used_leave_days, remaining_leave_days, recorded_at
	FROM performance_snapshots
	WHERE user_id = $1 AND day >= $2
	ORDER BY day ASC
`

// ListByUser implements performance.HistoryRepository.
func (r *performanceSnapshotRepositoryImpl) ListByUser(ctx context.Context, userID string, since time.Time) ([]performance.Snapshot, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, listSnapshotsQuery, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list performance snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []performance.Snapshot
	for rows.Next() {
		var (
			s      performance.Snapshot
			source string
		)
		if err := rows.Scan(
			&s.UserID,
			&s.Day,
			&source,
			&s.Stats.Attendance,
			&s.Stats.TaskCompletionRate,
			&s.Stats.ProductivityScore,
			&s.Stats.ProjectContributionScore,
			&s.Stats.TeamworkScore,
			&s.Stats.PerformanceScore,
			&s.Stats.TasksCompleted,
			&s.Stats.TotalTasks,
			&s.Stats.TotalHoursThisMonth,
			&s.Stats.OvertimeHours,
			&s.Stats.ActiveProjects,
			&s.Stats.TotalProjects,
			&s.Stats.UsedLeaveDays,
			&s.Stats.RemainingLeaveDays,
			&s.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan performance snapshot: %w", err)
		}
		s.Source = performance.Source(source)
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate performance snapshots: %w", err)
	}

	return snapshots, nil
}

// DeleteBefore implements performance.HistoryRepository.
func (r *performanceSnapshotRepositoryImpl) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM performance_snapshots WHERE day < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete performance snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}
