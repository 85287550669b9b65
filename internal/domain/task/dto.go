package task

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/validator"
)

// ========================================
// VIEW MODELS
// ========================================

type TaskSummary struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Project       string     `json:"project"`
	ProjectID     string     `json:"project_id"`
	Status        Status     `json:"status"`
	TimeLogged    float64    `json:"time_logged"`
	EstimatedTime float64    `json:"estimated_time"`
	DueDate       *time.Time `json:"due_date"`
	Priority      Priority   `json:"priority"`
	AssignedBy    string     `json:"assigned_by"`
	Description   string     `json:"description"`
	Photos        []string   `json:"photos"`
	Progress      float64    `json:"progress"`
}

type Requirement struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
}

type CommentView struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type TaskDetail struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Project       string        `json:"project"`
	ProjectID     string        `json:"project_id"`
	Status        Status        `json:"status"`
	TimeLogged    float64       `json:"time_logged"`
	EstimatedTime float64       `json:"estimated_time"`
	DueDate       *time.Time    `json:"due_date"`
	Priority      Priority      `json:"priority"`
	AssignedBy    string        `json:"assigned_by"`
	AssignedDate  time.Time     `json:"assigned_date"`
	Description   string        `json:"description"`
	Requirements  []Requirement `json:"requirements"`
	Photos        []string      `json:"photos"`
	Comments      []CommentView `json:"comments"`
	Progress      float64       `json:"progress"`
}

// ========================================
// REQUESTS
// ========================================

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Status = Status(strings.ToUpper(strings.TrimSpace(string(r.Status))))
	if validator.IsEmpty(string(r.Status)) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: TODO, IN_PROGRESS, REVIEW, COMPLETED, CANCELLED",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimerRequest struct {
	PhotoURL string `json:"photo_url"`
}

func (r *TimerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PhotoURL != "" && !validator.IsValidURL(r.PhotoURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo_url",
			Message: "photo_url must be an absolute http(s) URL",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// UPSTREAM PAYLOADS
// ========================================

type SubtaskStatusPayload struct {
	Status Status `json:"status"`
}

type StartTimeEntryPayload struct {
	TaskID      string  `json:"taskId"`
	UserID      string  `json:"userId"`
	TimeIn      string  `json:"timeIn"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
}

type StopTimeEntryPayload struct {
	TimeOut string `json:"timeOut"`
}

type DocumentPayload struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Type     string `json:"type"`
	TaskID   string `json:"taskId"`
	MimeType string `json:"mimeType"`
}
