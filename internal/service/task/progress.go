package task

import "github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"

// CalculateProgress blends time progress and checklist progress into a
// 0..1 fraction. Completed tasks are always 1.
func CalculateProgress(timeLogged, estimatedTime float64, subtasks []task.Subtask, status task.Status) float64 {
	if status == task.StatusCompleted {
		return 1
	}

	var timeProgress float64
	if estimatedTime > 0 {
		timeProgress = min(timeLogged/estimatedTime, 1)
	}

	var subtaskProgress float64
	if len(subtasks) > 0 {
		completed := 0
		for _, st := range subtasks {
			if st.Status == task.StatusCompleted {
				completed++
			}
		}
		subtaskProgress = float64(completed) / float64(len(subtasks))
	}

	switch {
	case estimatedTime > 0 && len(subtasks) > 0:
		return (timeProgress + subtaskProgress) / 2
	case len(subtasks) > 0:
		return subtaskProgress
	case estimatedTime > 0:
		return timeProgress
	default:
		return 0
	}
}

// ApplyOptimisticStatus returns the summary as the app shows it right after
// a status change, before the backend confirms anything.
func ApplyOptimisticStatus(s task.TaskSummary, status task.Status) task.TaskSummary {
	s.Status = status
	if status == task.StatusCompleted {
		s.Progress = 1
		s.TimeLogged = s.EstimatedTime
	}
	return s
}

func applyOptimisticDetail(d task.TaskDetail, status task.Status) task.TaskDetail {
	d.Status = status
	if status == task.StatusCompleted {
		d.Progress = 1
		d.TimeLogged = d.EstimatedTime
	}
	return d
}
