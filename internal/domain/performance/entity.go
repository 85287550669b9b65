package performance

import (
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

// ProfileStatistics is the derived performance profile of one employee.
type ProfileStatistics struct {
	Attendance          float64 `json:"attendance"`
	TasksCompleted      int     `json:"tasks_completed"`
	TotalTasks          int     `json:"total_tasks"`
	TaskCompletionRate  float64 `json:"task_completion_rate"`
	TotalHoursThisMonth float64 `json:"total_hours_this_month"`
	OvertimeHours       float64 `json:"overtime_hours"`
	ActiveProjects      int     `json:"active_projects"`
	TotalProjects       int     `json:"total_projects"`
	RemainingLeaveDays  float64 `json:"remaining_leave_days"`
	UsedLeaveDays       float64 `json:"used_leave_days"`
	PerformanceScore    float64 `json:"performance_score"`

	ProductivityScore        float64 `json:"productivity_score"`
	TeamworkScore            float64 `json:"teamwork_score"`
	ProjectContributionScore float64 `json:"project_contribution_score"`
}

// UpstreamStatistics is the statistics object the backend may attach to
// the user record.
type UpstreamStatistics struct {
	Attendance               utils.Number `json:"attendance"`
	TasksCompleted           utils.Number `json:"tasksCompleted"`
	TotalTasks               utils.Number `json:"totalTasks"`
	TaskCompletionRate       utils.Number `json:"taskCompletionRate"`
	TotalHoursThisMonth      utils.Number `json:"totalHoursThisMonth"`
	OvertimeHours            utils.Number `json:"overtimeHours"`
	ActiveProjects           utils.Number `json:"activeProjects"`
	TotalProjects            utils.Number `json:"totalProjects"`
	RemainingLeaveDays       utils.Number `json:"remainingLeaveDays"`
	UsedLeaveDays            utils.Number `json:"usedLeaveDays"`
	PerformanceScore         utils.Number `json:"performanceScore"`
	ProductivityScore        utils.Number `json:"productivityScore"`
	TeamworkScore            utils.Number `json:"teamworkScore"`
	ProjectContributionScore utils.Number `json:"projectContributionScore"`
}

func (u UpstreamStatistics) Profile() ProfileStatistics {
	return ProfileStatistics{
		Attendance:               u.Attendance.Float64(),
		TasksCompleted:           int(u.TasksCompleted.Float64()),
		TotalTasks:               int(u.TotalTasks.Float64()),
		TaskCompletionRate:       u.TaskCompletionRate.Float64(),
		TotalHoursThisMonth:      u.TotalHoursThisMonth.Float64(),
		OvertimeHours:            u.OvertimeHours.Float64(),
		ActiveProjects:           int(u.ActiveProjects.Float64()),
		TotalProjects:            int(u.TotalProjects.Float64()),
		RemainingLeaveDays:       u.RemainingLeaveDays.Float64(),
		UsedLeaveDays:            u.UsedLeaveDays.Float64(),
		PerformanceScore:         u.PerformanceScore.Float64(),
		ProductivityScore:        u.ProductivityScore.Float64(),
		TeamworkScore:            u.TeamworkScore.Float64(),
		ProjectContributionScore: u.ProjectContributionScore.Float64(),
	}
}

type Source string

const (
	SourceServer   Source = "server"
	SourceComputed Source = "computed"
)

// Statistics is either the backend's own figures or the locally computed
// fallback. Only this package can add variants.
type Statistics interface {
	Profile() ProfileStatistics
	Source() Source
	sealed()
}

type ServerStatistics struct {
	Stats ProfileStatistics
}

func (s ServerStatistics) Profile() ProfileStatistics { return s.Stats }
func (ServerStatistics) Source() Source               { return SourceServer }
func (ServerStatistics) sealed()                      {}

type ComputedStatistics struct {
	Stats ProfileStatistics
}

func (c ComputedStatistics) Profile() ProfileStatistics { return c.Stats }
func (ComputedStatistics) Source() Source               { return SourceComputed }
func (ComputedStatistics) sealed()                      {}

// Snapshot is one stored day of a user's statistics.
type Snapshot struct {
	UserID     string
	Day        time.Time
	Source     Source
	Stats      ProfileStatistics
	RecordedAt time.Time
}
