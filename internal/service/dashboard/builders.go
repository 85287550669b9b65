package dashboard

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
	attendancesvc "github.com/cmlabs-hris/hris-mobile-gateway/internal/service/attendance"
)

const (
	maxDeadlines     = 3
	maxActivity      = 5
	deadlineTypeTask = "TASK"
)

// BuildStats summarises today's tasks, check-in state and this week's
// overtime. Tasks count when in progress, due today or completed today.
func BuildStats(u user.User, tasks []task.Task, now time.Time, loc *time.Location) dashboard.Stats {
	if u.Employee == nil {
		return dashboard.Stats{}
	}

	relevant, completed := 0, 0
	for _, t := range tasks {
		isRelevant := t.Status == task.StatusInProgress ||
			(!t.DueDate.IsZero() && utils.SameDay(t.DueDate.Time, now, loc)) ||
			(!t.CompletedAt.IsZero() && utils.SameDay(t.CompletedAt.Time, now, loc))
		if !isRelevant {
			continue
		}
		relevant++
		if t.Status == task.StatusCompleted {
			completed++
		}
	}

	var progress float64
	if relevant > 0 {
		progress = float64(completed) / float64(relevant)
	}

	return dashboard.Stats{
		TodayTasks:     relevant,
		CompletedTasks: completed,
		TaskProgress:   progress,
		CheckedIn:      attendancesvc.TodayStatus(u, now, loc).CheckedIn,
		OvertimeHours:  attendancesvc.WeeklyStats(u, now, loc).Overtime,
	}
}

// BuildDeadlines returns the next open tasks by due date.
func BuildDeadlines(tasks []task.Task, now time.Time) []dashboard.DeadlineItem {
	upcoming := make([]task.Task, 0)
	for _, t := range tasks {
		if !t.DueDate.IsZero() && t.DueDate.After(now) && t.Status != task.StatusCompleted {
			upcoming = append(upcoming, t)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].DueDate.Before(upcoming[j].DueDate.Time) })

	out := make([]dashboard.DeadlineItem, 0, maxDeadlines)
	for _, t := range upcoming[:min(len(upcoming), maxDeadlines)] {
		out = append(out, dashboard.DeadlineItem{ID: t.ID, Title: t.Title, Date: t.DueDate.Time, Type: deadlineTypeTask})
	}
	return out
}

// BuildActivity merges check-ins, check-outs and task events into a feed,
// most recent first.
func BuildActivity(u user.User, tasks []task.Task) []dashboard.ActivityItem {
	items := make([]dashboard.ActivityItem, 0)
	if u.Employee == nil {
		return items
	}

	for _, r := range u.AttendanceRecords() {
		if !r.CheckIn.IsZero() {
			items = append(items, dashboard.ActivityItem{
				ID:        "in-" + r.ID,
				Title:     "Checked In",
				Subtitle:  "Work Started",
				Timestamp: r.CheckIn.Time,
				Type:      dashboard.ActivityCheckIn,
			})
		}
		if !r.CheckOut.IsZero() {
			items = append(items, dashboard.ActivityItem{
				ID:        "out-" + r.ID,
				Title:     "Checked Out",
				Subtitle:  "Work Ended",
				Timestamp: r.CheckOut.Time,
				Type:      dashboard.ActivityCheckOut,
			})
		}
	}

	for _, t := range tasks {
		if !t.CompletedAt.IsZero() {
			items = append(items, dashboard.ActivityItem{
				ID:        "comp-" + t.ID,
				Title:     "Task Completed",
				Subtitle:  t.Title,
				Timestamp: t.CompletedAt.Time,
				Type:      dashboard.ActivityTaskComplete,
			})
			continue
		}
		// Creation time stands in for the assignment time.
		items = append(items, dashboard.ActivityItem{
			ID:        "assign-" + t.ID,
			Title:     "Task Assigned",
			Subtitle:  t.Title,
			Timestamp: t.CreatedAt.Time,
			Type:      dashboard.ActivityTaskAssigned,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Timestamp.After(items[j].Timestamp) })
	return items[:min(len(items), maxActivity)]
}

// withOverrides returns the tasks with session status overrides applied.
func withOverrides(tasks []task.Task, overrides map[string]task.Status) []task.Task {
	if len(overrides) == 0 {
		return tasks
	}
	out := make([]task.Task, len(tasks))
	for i, t := range tasks {
		if status, ok := overrides[t.ID]; ok {
			t.Status = status
		}
		out[i] = t
	}
	return out
}
