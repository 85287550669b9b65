package project

import (
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

type Status string

const (
	StatusPlanning   Status = "PLANNING"
	StatusActive     Status = "ACTIVE"
	StatusInProgress Status = "IN_PROGRESS"
	StatusOnHold     Status = "ON_HOLD"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// IsActive covers the statuses counted as active work.
func (s Status) IsActive() bool {
	return s == StatusActive || s == StatusPlanning || s == StatusInProgress
}

type Role string

const (
	RoleManager Role = "Manager"
	RoleMember  Role = "Member"
)

type Named struct {
	Name string `json:"name"`
}

type Assignee struct {
	FirstName string `json:"firstName"`
}

type ProjectTask struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Status      task.Status      `json:"status"`
	DueDate     utils.Time       `json:"dueDate"`
	Assignees   []Assignee       `json:"assignees"`
	TimeEntries []task.TimeEntry `json:"timeEntries"`
}

type TeamMember struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	User   *Named `json:"user"`
}

type FolderDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type Note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Folder struct {
	ID        string           `json:"id"`
	Documents []FolderDocument `json:"Document"`
	Notes     []Note           `json:"Note"`
}

// Project is the upstream project as embedded in the user record, either
// managed directly or reached through a team membership.
type Project struct {
	ID            string           `json:"id"`
	ProjectNumber string           `json:"projectNumber"`
	Title         string           `json:"title"`
	Description   *string          `json:"description"`
	Status        Status           `json:"status"`
	Priority      task.Priority    `json:"priority"`
	Progress      utils.Number     `json:"progress"`
	StartDate     utils.Time       `json:"startDate"`
	EndDate       utils.Time       `json:"endDate"`
	Deadline      utils.Time       `json:"deadline"`
	Budget        utils.Number     `json:"budget"`
	BudgetSpent   utils.Number     `json:"budgetSpent"`
	Currency      string           `json:"currency"`
	HourlyRate    utils.Number     `json:"hourlyRate"`
	BillingType   *string          `json:"billingType"`
	Client        *Named           `json:"client"`
	Manager       *Named           `json:"manager"`
	Tasks         []ProjectTask    `json:"tasks"`
	Folders       []Folder         `json:"Folder"`
	TeamMembers   []TeamMember     `json:"teamMembers"`
	WorkLogs      []struct{}       `json:"workLogs"`
	Comments      []task.Comment   `json:"comment"`
	ToolUses      []struct{}       `json:"toolInterUses"`
	TimeEntries   []task.TimeEntry `json:"timeEntries"`
}

type ProjectTeam struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"projectId"`
	UserID    string   `json:"userId"`
	Project   *Project `json:"project"`
}
