package user

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/leave"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/performance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/project"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

type Role string

const (
	RoleChiefExecutiveOfficer Role = "CHIEF_EXECUTIVE_OFFICER"
	RoleAdminManager          Role = "ADMIN_MANAGER"
	RoleGeneralManager        Role = "GENERAL_MANAGER"
	RoleManager               Role = "MANAGER"
	RoleViewer                Role = "VIEWER"
	RoleEmployee              Role = "EMPLOYEE"
	RoleEditor                Role = "EDITOR"
)

type Department struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Manager *project.Named `json:"manager"`
}

type Employee struct {
	ID                 string       `json:"id"`
	EmployeeNumber     string       `json:"employeeNumber"`
	FirstName          string       `json:"firstName"`
	LastName           string       `json:"lastName"`
	Email              *string      `json:"email"`
	Phone              *string      `json:"phone"`
	Avatar             *string      `json:"avatar"`
	Position           string       `json:"position"`
	Currency           string       `json:"currency"`
	HireDate           utils.Time   `json:"hireDate"`
	Status             string       `json:"status"`
	ScheduledKnockIn   *string      `json:"scheduledKnockIn"`
	ScheduledKnockOut  *string      `json:"scheduledKnockOut"`
	WorkingDays        []string     `json:"workingDays"`
	AnnualLeaveDays    utils.Number `json:"annualLeaveDays"`
	SickLeaveDays      utils.Number `json:"sickLeaveDays"`
	StudyLeaveDays     utils.Number `json:"studyLeaveDays"`
	MaternityLeaveDays utils.Number `json:"maternityLeaveDays"`
	PaternityLeaveDays utils.Number `json:"paternityLeaveDays"`
	UnpaidLeaveDays    utils.Number `json:"unpaidLeaveDays"`

	Department        *Department                   `json:"department"`
	AssignedTasks     []task.Task                   `json:"assignedTasks"`
	AttendanceRecords []attendance.AttendanceRecord `json:"AttendanceRecord"`
	LeaveRequests     []leave.LeaveRequest          `json:"leaveRequests"`
	Payments          []payslip.Payment             `json:"payments"`
	LegacyPayments    []payslip.Payment             `json:"Payments"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// PaymentRecords returns payments, falling back to the capitalised key
// older records were written with.
func (e Employee) PaymentRecords() []payslip.Payment {
	if len(e.Payments) > 0 {
		return e.Payments
	}
	return e.LegacyPayments
}

// Entitlements returns the configured leave days as stored, zero meaning
// "not configured".
func (e Employee) Entitlements() leave.Entitlements {
	return leave.Entitlements{
		Annual:    e.AnnualLeaveDays.Float64(),
		Sick:      e.SickLeaveDays.Float64(),
		Study:     e.StudyLeaveDays.Float64(),
		Maternity: e.MaternityLeaveDays.Float64(),
		Paternity: e.PaternityLeaveDays.Float64(),
		Unpaid:    e.UnpaidLeaveDays.Float64(),
	}
}

// User is the full record served by GET /users/userId/{id}. It is the
// immutable snapshot every view-model is derived from.
type User struct {
	ID           string                          `json:"id"`
	UserID       string                          `json:"userId"`
	Email        string                          `json:"email"`
	Name         string                          `json:"name"`
	UserName     string                          `json:"userName"`
	Avatar       *string                         `json:"avatar"`
	Role         Role                            `json:"role"`
	Timezone     string                          `json:"timezone"`
	Employee     *Employee                       `json:"employee"`
	TimeEntries  []task.TimeEntry                `json:"timeEntries"`
	Projects     []project.Project               `json:"Project"`
	ProjectTeams []project.ProjectTeam           `json:"projectTeams"`
	Statistics   *performance.UpstreamStatistics `json:"statistics"`
}

// AllProjects returns managed projects followed by team projects, keeping
// the first occurrence of each id.
func (u User) AllProjects() []project.Project {
	seen := make(map[string]bool)
	var out []project.Project
	for _, p := range u.Projects {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	for _, pt := range u.ProjectTeams {
		if pt.Project == nil || seen[pt.Project.ID] {
			continue
		}
		seen[pt.Project.ID] = true
		out = append(out, *pt.Project)
	}
	return out
}

// Tasks returns the employee's assigned tasks, nil without an employee.
func (u User) Tasks() []task.Task {
	if u.Employee == nil {
		return nil
	}
	return u.Employee.AssignedTasks
}

func (u User) AttendanceRecords() []attendance.AttendanceRecord {
	if u.Employee == nil {
		return nil
	}
	return u.Employee.AttendanceRecords
}

// Snapshot is a fetched user record plus the task status overrides applied
// locally since the fetch.
type Snapshot struct {
	User          User                   `json:"user"`
	FetchedAt     time.Time              `json:"fetched_at"`
	TaskOverrides map[string]task.Status `json:"task_overrides,omitempty"`
}

// Location resolves the user's timezone, falling back when it is unset or
// unknown.
func (u User) Location(fallback *time.Location) *time.Location {
	if u.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}
