package statistics

import (
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/leave"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

// Composite weights, summing to 1.
const (
	WeightAttendance          = 0.15
	WeightTaskCompletion      = 0.35
	WeightProductivity        = 0.25
	WeightProjectContribution = 0.15
	WeightTeamwork            = 0.10
)

const defaultAnnualLeaveDays = 21

type Scores struct {
	Attendance          float64
	TaskCompletion      float64
	Productivity        float64
	ProjectContribution float64
	Teamwork            float64
}

// PerformanceScore is the rounded weighted sum of the component scores.
func PerformanceScore(s Scores) float64 {
	return float64(utils.RoundHalfUp(
		s.Attendance*WeightAttendance +
			s.TaskCompletion*WeightTaskCompletion +
			s.Productivity*WeightProductivity +
			s.ProjectContribution*WeightProjectContribution +
			s.Teamwork*WeightTeamwork,
	))
}

// Resolve returns the backend's statistics when it sent a usable set (a
// non-zero attendance figure) and computes them from the raw record
// otherwise.
func Resolve(u user.User) performance.Statistics {
	if u.Statistics != nil && u.Statistics.Attendance.Float64() != 0 {
		return performance.ServerStatistics{Stats: u.Statistics.Profile()}
	}
	return performance.ComputedStatistics{Stats: Compute(u)}
}

// Compute derives the full profile statistics from the user record.
func Compute(u user.User) performance.ProfileStatistics {
	tasks := u.Tasks()
	records := u.AttendanceRecords()
	projects := u.AllProjects()

	scores := Scores{
		Attendance:          AttendanceRate(records),
		TaskCompletion:      TaskCompletionRate(tasks),
		Productivity:        Productivity(tasks),
		ProjectContribution: ProjectContribution(tasks),
		Teamwork:            Teamwork(tasks),
	}

	var hours float64
	for _, e := range u.TimeEntries {
		hours += e.Hours.Float64()
	}

	active := 0
	for _, p := range projects {
		if p.Status.IsActive() {
			active++
		}
	}

	used, remaining := annualLeaveUsage(u)

	return performance.ProfileStatistics{
		Attendance:               scores.Attendance,
		TasksCompleted:           completedCount(tasks),
		TotalTasks:               len(tasks),
		TaskCompletionRate:       scores.TaskCompletion,
		TotalHoursThisMonth:      utils.RoundTo(hours, 1),
		OvertimeHours:            OvertimeHours(records),
		ActiveProjects:           active,
		TotalProjects:            len(projects),
		RemainingLeaveDays:       remaining,
		UsedLeaveDays:            used,
		PerformanceScore:         PerformanceScore(scores),
		ProductivityScore:        scores.Productivity,
		TeamworkScore:            scores.Teamwork,
		ProjectContributionScore: scores.ProjectContribution,
	}
}

// annualLeaveUsage counts every approved request against the annual
// entitlement.
func annualLeaveUsage(u user.User) (used, remaining float64) {
	total := float64(defaultAnnualLeaveDays)
	if u.Employee == nil {
		return 0, total
	}
	if configured := u.Employee.AnnualLeaveDays.Float64(); configured != 0 {
		total = configured
	}
	for _, req := range u.Employee.LeaveRequests {
		if req.Status == leave.StatusApproved {
			used += req.Days.Float64()
		}
	}
	return used, max(0, total-used)
}
