package task

import (
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusInReview   Status = "IN_REVIEW"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// IsReview treats IN_REVIEW as an alias of REVIEW.
func (s Status) IsReview() bool {
	return s == StatusReview || s == StatusInReview
}

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusInReview, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

type Person struct {
	Name string `json:"name"`
}

// ProjectRef is the project embedded in an assigned task.
type ProjectRef struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Manager *Person `json:"manager"`
}

type TimeEntry struct {
	ID      string       `json:"id"`
	Hours   utils.Number `json:"hours"`
	Date    utils.Time   `json:"date"`
	TimeIn  utils.Time   `json:"timeIn"`
	TimeOut utils.Time   `json:"timeOut"`
	TaskID  *string      `json:"taskId"`
}

// IsActive reports a clocked session that has not been stopped.
func (e TimeEntry) IsActive() bool {
	return !e.TimeIn.IsZero() && e.TimeOut.IsZero()
}

type Subtask struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
	Order  int    `json:"order"`
}

type Document struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	URL      string  `json:"url"`
	MimeType *string `json:"mimeType"`
	Type     string  `json:"type"`
}

type Comment struct {
	ID            string     `json:"id"`
	Content       string     `json:"content"`
	CommenterName string     `json:"commenterName"`
	CreatedAt     utils.Time `json:"createdAt"`
}

type Task struct {
	ID             string       `json:"id"`
	TaskNumber     string       `json:"taskNumber"`
	Title          string       `json:"title"`
	Description    *string      `json:"description"`
	ProjectID      string       `json:"projectId"`
	Status         Status       `json:"status"`
	Priority       Priority     `json:"priority"`
	DueDate        utils.Time   `json:"dueDate"`
	CompletedAt    utils.Time   `json:"completedAt"`
	CreatedAt      utils.Time   `json:"createdAt"`
	EstimatedHours utils.Number `json:"estimatedHours"`
	ActualHours    utils.Number `json:"actualHours"`
	Project        *ProjectRef  `json:"project"`
	TimeEntries    []TimeEntry  `json:"timeEntries"`
	Documents      []Document   `json:"documents"`
	Subtasks       []Subtask    `json:"subtask"`
	Comments       []Comment    `json:"comment"`
}

// TimeLogged sums the task's time entries and falls back to actualHours
// when the entries add up to nothing.
func (t Task) TimeLogged() float64 {
	var total float64
	for _, e := range t.TimeEntries {
		total += e.Hours.Float64()
	}
	if total != 0 {
		return total
	}
	return t.ActualHours.Float64()
}

func (t Task) EstimatedTime() float64 {
	return t.EstimatedHours.Float64()
}

// ActiveTimeEntry returns the latest open time entry, if any.
func (t Task) ActiveTimeEntry() (TimeEntry, bool) {
	var (
		active TimeEntry
		found  bool
	)
	for _, e := range t.TimeEntries {
		if !e.IsActive() {
			continue
		}
		if !found || e.TimeIn.After(active.TimeIn.Time) {
			active = e
			found = true
		}
	}
	return active, found
}
