package statistics

import (
	"testing"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/leave"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/project"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(statuses ...attendance.Status) []attendance.AttendanceRecord {
	out := make([]attendance.AttendanceRecord, len(statuses))
	for i, s := range statuses {
		out[i] = attendance.AttendanceRecord{Status: s}
	}
	return out
}

func TestAttendanceRate(t *testing.T) {
	t.Run("empty is optimistic", func(t *testing.T) {
		assert.Equal(t, 100.0, AttendanceRate(nil))
	})

	t.Run("present absent late", func(t *testing.T) {
		got := AttendanceRate(records(attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusLate))
		assert.Equal(t, 57.0, got)
	})

	t.Run("leave kinds", func(t *testing.T) {
		assert.Equal(t, 50.0, AttendanceRate(records(attendance.StatusSickLeave, attendance.StatusStudyLeave)))
		assert.Equal(t, 30.0, AttendanceRate(records(attendance.StatusUnpaidLeave)))
		assert.Equal(t, 80.0, AttendanceRate(records(attendance.StatusHalfDay)))
	})

	t.Run("unknown status weighs zero", func(t *testing.T) {
		assert.Equal(t, 50.0, AttendanceRate(records(attendance.StatusPresent, "REMOTE")))
	})

	t.Run("always within bounds", func(t *testing.T) {
		all := []attendance.Status{
			attendance.StatusPresent, attendance.StatusAbsent, attendance.StatusLate,
			attendance.StatusHalfDay, attendance.StatusSickLeave, attendance.StatusAnnualLeave,
			attendance.StatusUnpaidLeave, attendance.StatusMaternityLeave,
			attendance.StatusPaternityLeave, attendance.StatusStudyLeave,
		}
		for i := range all {
			got := AttendanceRate(records(all[:i+1]...))
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		}
	})
}

func TestOvertimeHours(t *testing.T) {
	recs := []attendance.AttendanceRecord{
		{OvertimeHours: 1.234},
		{OvertimeHours: 0.5},
		{},
	}
	assert.Equal(t, 1.73, OvertimeHours(recs))
}

func TestTaskCompletionRate(t *testing.T) {
	assert.Equal(t, 0.0, TaskCompletionRate(nil))

	tasks := []task.Task{
		{Status: task.StatusCompleted},
		{Status: task.StatusCompleted},
		{Status: task.StatusTodo},
		{Status: task.StatusCancelled},
	}
	assert.Equal(t, 67.0, TaskCompletionRate(tasks))

	allCancelled := []task.Task{{Status: task.StatusCancelled}}
	assert.Equal(t, 0.0, TaskCompletionRate(allCancelled))
}

func TestTaskProductivity(t *testing.T) {
	cases := []struct {
		name string
		task task.Task
		want float64
	}{
		{"faster than estimate caps at 120", task.Task{EstimatedHours: 8, ActualHours: 4}, 120},
		{"slower than estimate floors at 70", task.Task{EstimatedHours: 2, ActualHours: 10}, 70},
		{"in range", task.Task{EstimatedHours: 9, ActualHours: 10}, 90},
		{"no actual hours", task.Task{EstimatedHours: 8}, 90},
		{"no estimate", task.Task{ActualHours: 3}, 90},
		{
			"time entries beat actualHours",
			task.Task{EstimatedHours: 4, ActualHours: 40, TimeEntries: []task.TimeEntry{{Hours: 2}, {Hours: 2}}},
			100,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, TaskProductivity(c.task), 1e-9)
		})
	}
}

func TestProductivity(t *testing.T) {
	assert.Equal(t, 0.0, Productivity([]task.Task{{Status: task.StatusTodo, EstimatedHours: 8, ActualHours: 4}}))

	tasks := []task.Task{
		{Status: task.StatusCompleted, EstimatedHours: 8, ActualHours: 4},
		{Status: task.StatusCompleted},
		{Status: task.StatusInProgress, EstimatedHours: 1, ActualHours: 10},
	}
	assert.Equal(t, 105.0, Productivity(tasks))
}

func TestProjectContribution(t *testing.T) {
	assert.Equal(t, 0.0, ProjectContribution(nil))
	assert.Equal(t, 0.0, ProjectContribution([]task.Task{{Status: task.StatusCompleted}}))

	tasks := []task.Task{
		{ProjectID: "a", Status: task.StatusCompleted},
		{ProjectID: "a", Status: task.StatusTodo},
		{ProjectID: "b", Status: task.StatusCompleted},
		{Status: task.StatusTodo},
	}
	assert.Equal(t, 75.0, ProjectContribution(tasks))
}

func TestTeamwork(t *testing.T) {
	assert.Equal(t, 50.0, Teamwork(nil))

	tasks := []task.Task{
		{ProjectID: "a", Status: task.StatusReview, Subtasks: []task.Subtask{{ID: "s1"}}},
		{ProjectID: "b", Status: task.StatusInReview},
		{ProjectID: "c", Status: task.StatusTodo, Subtasks: []task.Subtask{{ID: "s2"}}},
		{ProjectID: "d", Status: task.StatusCompleted},
	}
	// 2/4*50 + 2/4*30 + min(4*7, 20)
	assert.Equal(t, 60.0, Teamwork(tasks))

	full := []task.Task{{ProjectID: "a", Status: task.StatusReview, Subtasks: []task.Subtask{{ID: "s"}}}}
	assert.Equal(t, 87.0, Teamwork(full))
}

func TestPerformanceScore(t *testing.T) {
	got := PerformanceScore(Scores{
		Attendance:          100,
		TaskCompletion:      50,
		Productivity:        90,
		ProjectContribution: 40,
		Teamwork:            50,
	})
	// 15 + 17.5 + 22.5 + 6 + 5
	assert.Equal(t, 66.0, got)
}

func sampleUser() user.User {
	return user.User{
		ID:     "u1",
		UserID: "auth-1",
		Employee: &user.Employee{
			EmployeeNumber:  "EMP-1",
			AnnualLeaveDays: 0,
			AssignedTasks: []task.Task{
				{ID: "t1", ProjectID: "p1", Status: task.StatusCompleted, EstimatedHours: 8, ActualHours: 4},
				{ID: "t2", ProjectID: "p1", Status: task.StatusInProgress},
			},
			AttendanceRecords: records(attendance.StatusPresent, attendance.StatusPresent),
			LeaveRequests: []leave.LeaveRequest{
				{LeaveType: leave.TypeAnnual, Days: 3, Status: leave.StatusApproved},
				{LeaveType: leave.TypeSick, Days: 2, Status: leave.StatusApproved},
				{LeaveType: leave.TypeAnnual, Days: 9, Status: leave.StatusPending},
			},
		},
		TimeEntries: []task.TimeEntry{{Hours: 1.26}, {Hours: utils.Number(2)}},
		Projects: []project.Project{
			{ID: "p1", Status: project.StatusActive},
			{ID: "p2", Status: project.StatusCompleted},
		},
		ProjectTeams: []project.ProjectTeam{
			{Project: &project.Project{ID: "p1", Status: project.StatusActive}},
			{Project: &project.Project{ID: "p3", Status: project.StatusPlanning}},
			{ProjectID: "p4"},
		},
	}
}

func TestCompute(t *testing.T) {
	stats := Compute(sampleUser())

	assert.Equal(t, 100.0, stats.Attendance)
	assert.Equal(t, 1, stats.TasksCompleted)
	assert.Equal(t, 2, stats.TotalTasks)
	assert.Equal(t, 50.0, stats.TaskCompletionRate)
	assert.Equal(t, 120.0, stats.ProductivityScore)
	assert.Equal(t, 50.0, stats.ProjectContributionScore)
	// 1/2 no subtasks -> 0, no review -> 0, one project -> 7
	assert.Equal(t, 7.0, stats.TeamworkScore)
	assert.Equal(t, 3.3, stats.TotalHoursThisMonth)
	assert.Equal(t, 2, stats.ActiveProjects)
	assert.Equal(t, 3, stats.TotalProjects)
	assert.Equal(t, 5.0, stats.UsedLeaveDays)
	assert.Equal(t, 16.0, stats.RemainingLeaveDays)
	// 15 + 17.5 + 30 + 7.5 + 0.7 = 70.7
	assert.Equal(t, 71.0, stats.PerformanceScore)
}

func TestCompute_NoEmployee(t *testing.T) {
	stats := Compute(user.User{ID: "u1"})

	assert.Equal(t, 100.0, stats.Attendance)
	assert.Equal(t, 0.0, stats.TaskCompletionRate)
	assert.Equal(t, 50.0, stats.TeamworkScore)
	assert.Equal(t, 21.0, stats.RemainingLeaveDays)
	// 15 + 0 + 0 + 0 + 5
	assert.Equal(t, 20.0, stats.PerformanceScore)
}

func TestResolve(t *testing.T) {
	t.Run("server statistics trusted", func(t *testing.T) {
		u := sampleUser()
		u.Statistics = &performance.UpstreamStatistics{Attendance: 88, PerformanceScore: 77}

		stats := Resolve(u)
		require.IsType(t, performance.ServerStatistics{}, stats)
		assert.Equal(t, performance.SourceServer, stats.Source())
		assert.Equal(t, 88.0, stats.Profile().Attendance)
		assert.Equal(t, 77.0, stats.Profile().PerformanceScore)
	})

	t.Run("zero attendance falls back to computed", func(t *testing.T) {
		u := sampleUser()
		u.Statistics = &performance.UpstreamStatistics{PerformanceScore: 10}

		stats := Resolve(u)
		require.IsType(t, performance.ComputedStatistics{}, stats)
		assert.Equal(t, 71.0, stats.Profile().PerformanceScore)
	})

	t.Run("missing statistics computed", func(t *testing.T) {
		stats := Resolve(sampleUser())
		assert.Equal(t, performance.SourceComputed, stats.Source())
	})
}
