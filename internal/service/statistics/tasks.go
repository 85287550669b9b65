package statistics

import (
	"math"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

const (
	productivityCeiling = 120.0
	productivityFloor   = 70.0
	productivityDefault = 90.0
	teamworkDefault     = 50.0
)

func countStatus(tasks []task.Task, status task.Status) int {
	n := 0
	for _, t := range tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}

// TaskCompletionRate is completed over non-cancelled tasks, 0-100.
func TaskCompletionRate(tasks []task.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}

	completed := countStatus(tasks, task.StatusCompleted)
	cancelled := countStatus(tasks, task.StatusCancelled)
	assignable := max(1, len(tasks)-cancelled)

	return float64(utils.RoundHalfUp(float64(completed) / float64(assignable) * 100))
}

// TaskProductivity scores one completed task by estimated over actual
// hours, clamped to [70, 120]. Missing hours score 90.
func TaskProductivity(t task.Task) float64 {
	estimated := t.EstimatedTime()
	actual := t.TimeLogged()
	if actual > 0 && estimated > 0 {
		ratio := estimated / actual * 100
		return math.Max(productivityFloor, math.Min(ratio, productivityCeiling))
	}
	return productivityDefault
}

// Productivity averages TaskProductivity over completed tasks. 0 when none
// are completed.
func Productivity(tasks []task.Task) float64 {
	var (
		total float64
		n     int
	)
	for _, t := range tasks {
		if t.Status != task.StatusCompleted {
			continue
		}
		total += TaskProductivity(t)
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(utils.RoundHalfUp(total / float64(n)))
}

type projectTally struct {
	total     int
	completed int
}

func tallyByProject(tasks []task.Task) map[string]*projectTally {
	byProject := make(map[string]*projectTally)
	for _, t := range tasks {
		if t.ProjectID == "" {
			continue
		}
		tally, ok := byProject[t.ProjectID]
		if !ok {
			tally = &projectTally{}
			byProject[t.ProjectID] = tally
		}
		tally.total++
		if t.Status == task.StatusCompleted {
			tally.completed++
		}
	}
	return byProject
}

// ProjectContribution averages the per-project completion rate across the
// projects the tasks belong to, capped at 100.
func ProjectContribution(tasks []task.Task) float64 {
	byProject := tallyByProject(tasks)
	if len(byProject) == 0 {
		return 0
	}

	var sum float64
	for _, tally := range byProject {
		sum += float64(tally.completed) / float64(tally.total) * 100
	}
	return float64(utils.RoundHalfUp(math.Min(sum/float64(len(byProject)), 100)))
}

// Teamwork combines subtask usage (up to 50), review share (up to 30) and
// project spread (7 per project, up to 20). 50 when there are no tasks.
func Teamwork(tasks []task.Task) float64 {
	if len(tasks) == 0 {
		return teamworkDefault
	}

	total := float64(len(tasks))
	var collaborative, review int
	for _, t := range tasks {
		if len(t.Subtasks) > 0 {
			collaborative++
		}
		if t.Status.IsReview() {
			review++
		}
	}
	projects := len(tallyByProject(tasks))

	collaboration := math.Min(float64(collaborative)/total*50, 50)
	reviewShare := math.Min(float64(review)/total*30, 30)
	diversity := math.Min(float64(projects)*7, 20)

	score := utils.RoundHalfUp(collaboration + reviewShare + diversity)
	return float64(min(100, max(0, score)))
}

func completedCount(tasks []task.Task) int {
	return countStatus(tasks, task.StatusCompleted)
}
