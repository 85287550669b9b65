package project

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/validator"
)

type TaskCount struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

type ProjectSummary struct {
	ID            string        `json:"id"`
	ProjectNumber string        `json:"project_number"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        Status        `json:"status"`
	Priority      task.Priority `json:"priority"`
	Progress      float64       `json:"progress"`
	StartDate     *time.Time    `json:"start_date"`
	EndDate       *time.Time    `json:"end_date"`
	Deadline      *time.Time    `json:"deadline"`
	ClientName    string        `json:"client_name"`
	ManagerName   string        `json:"manager_name"`
	Role          Role          `json:"role"`
	TaskCount     TaskCount     `json:"task_count"`
}

type Financial struct {
	Budget      float64 `json:"budget"`
	BudgetSpent float64 `json:"budget_spent"`
	Currency    string  `json:"currency"`
	HourlyRate  float64 `json:"hourly_rate"`
	BillingType *string `json:"billing_type"`
}

type Member struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	UserID string `json:"user_id"`
}

type Team struct {
	ManagerName string   `json:"manager_name"`
	ClientName  string   `json:"client_name"`
	Members     []Member `json:"members"`
}

type TaskItem struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Status   task.Status `json:"status"`
	Assignee string      `json:"assignee"`
	DueDate  *time.Time  `json:"due_date"`
}

type DocumentItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type NoteItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Files struct {
	Documents    []DocumentItem `json:"documents"`
	Notes        []NoteItem     `json:"notes"`
	TotalFolders int            `json:"total_folders"`
}

type Logs struct {
	TotalTasks      int     `json:"total_tasks"`
	TasksCompleted  int     `json:"tasks_completed"`
	TotalTimeLogged float64 `json:"total_time_logged"`
	TotalWorkLogs   int     `json:"total_work_logs"`
	TotalComments   int     `json:"total_comments"`
	TotalTools      int     `json:"total_tools"`
}

type CommentItem struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	CommenterName string    `json:"commenter_name"`
	CreatedAt     time.Time `json:"created_at"`
}

type ProjectDetail struct {
	ID            string        `json:"id"`
	ProjectNumber string        `json:"project_number"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Status        Status        `json:"status"`
	Priority      task.Priority `json:"priority"`
	Progress      float64       `json:"progress"`
	StartDate     *time.Time    `json:"start_date"`
	EndDate       *time.Time    `json:"end_date"`
	Deadline      *time.Time    `json:"deadline"`
	Financial     Financial     `json:"financial"`
	Team          Team          `json:"team"`
	Tasks         []TaskItem    `json:"tasks"`
	Files         Files         `json:"files"`
	Logs          Logs          `json:"logs"`
	Comments      []CommentItem `json:"comments"`
}

// ========================================
// REQUESTS
// ========================================

type AddCommentRequest struct {
	Content string `json:"content"`
}

func (r *AddCommentRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Content = strings.TrimSpace(r.Content)
	if validator.IsEmpty(r.Content) {
		errs = append(errs, validator.ValidationError{
			Field:   "content",
			Message: "content is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddWorkLogRequest struct {
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
}

func (r *AddWorkLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidHours(r.Hours) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours",
			Message: "hours must be greater than 0 and at most 24",
		})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
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

type CommentPayload struct {
	ProjectID     string `json:"projectId"`
	Content       string `json:"content"`
	CommenterID   string `json:"commenterId"`
	CommenterName string `json:"commenterName"`
}

type WorkLogPayload struct {
	ProjectID   string  `json:"projectId"`
	UserID      string  `json:"userId"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}
