package leave

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/validator"
)

type LeaveRequestResponse struct {
	ID            string      `json:"id"`
	LeaveType     LeaveType   `json:"leave_type"`
	StartDate     time.Time   `json:"start_date"`
	EndDate       time.Time   `json:"end_date"`
	Days          float64     `json:"days"`
	Reason        string      `json:"reason"`
	Status        LeaveStatus `json:"status"`
	RequestedDate time.Time   `json:"requested_date"`
	ApprovedBy    *string     `json:"approved_by"`
	Comments      *string     `json:"comments"`
}

type BalanceEntry struct {
	Total     float64 `json:"total"`
	Used      float64 `json:"used"`
	Remaining float64 `json:"remaining"`
}

type LeaveBalance struct {
	Annual    BalanceEntry `json:"annual"`
	Sick      BalanceEntry `json:"sick"`
	Study     BalanceEntry `json:"study"`
	Maternity BalanceEntry `json:"maternity"`
	Paternity BalanceEntry `json:"paternity"`
	Unpaid    BalanceEntry `json:"unpaid"`
}

type CreateLeaveRequest struct {
	LeaveType   LeaveType `json:"leave_type"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Days        float64   `json:"days"`
	Reason      string    `json:"reason"`
	ContactInfo string    `json:"contact_info"`

	// Parsed by Validate
	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	r.LeaveType = LeaveType(strings.ToUpper(strings.TrimSpace(string(r.LeaveType))))
	if validator.IsEmpty(string(r.LeaveType)) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	} else if !r.LeaveType.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: ANNUAL, SICK, MATERNITY, PATERNITY, STUDY, UNPAID, COMPASSIONATE",
		})
	}

	start, okStart := parseDay(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD or an ISO8601 timestamp",
		})
	}
	end, okEnd := parseDay(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD or an ISO8601 timestamp",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if r.Days <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must be greater than 0",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	r.Start, r.End = start, end
	return nil
}

func parseDay(s string) (time.Time, bool) {
	if t, ok := validator.IsValidDate(s); ok {
		return t, true
	}
	return validator.IsValidDateTime(s)
}

// CreatePayload is the body of the backend leave submission.
// employeeId carries the employee number, not the internal id.
type CreatePayload struct {
	EmployeeID  string    `json:"employeeId"`
	LeaveType   LeaveType `json:"leaveType"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	Days        float64   `json:"days"`
	Reason      string    `json:"reason"`
	ContactInfo string    `json:"contactInfo"`
}
