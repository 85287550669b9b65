package leave

import (
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

type LeaveType string

const (
	TypeAnnual        LeaveType = "ANNUAL"
	TypeSick          LeaveType = "SICK"
	TypeMaternity     LeaveType = "MATERNITY"
	TypePaternity     LeaveType = "PATERNITY"
	TypeStudy         LeaveType = "STUDY"
	TypeUnpaid        LeaveType = "UNPAID"
	TypeCompassionate LeaveType = "COMPASSIONATE"
)

func (t LeaveType) IsValid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeMaternity, TypePaternity, TypeStudy, TypeUnpaid, TypeCompassionate:
		return true
	}
	return false
}

type LeaveStatus string

const (
	StatusPending   LeaveStatus = "PENDING"
	StatusApproved  LeaveStatus = "APPROVED"
	StatusRejected  LeaveStatus = "REJECTED"
	StatusCancelled LeaveStatus = "CANCELLED"
)

type LeaveRequest struct {
	ID            string       `json:"id"`
	LeaveType     LeaveType    `json:"leaveType"`
	StartDate     utils.Time   `json:"startDate"`
	EndDate       utils.Time   `json:"endDate"`
	Days          utils.Number `json:"days"`
	Reason        string       `json:"reason"`
	Status        LeaveStatus  `json:"status"`
	RequestedDate utils.Time   `json:"requestedDate"`
	ApprovedBy    *string      `json:"approvedBy"`
	Comments      *string      `json:"comments"`
}

// Entitlements are the per-employee leave day settings.
type Entitlements struct {
	Annual    float64
	Sick      float64
	Study     float64
	Maternity float64
	Paternity float64
	Unpaid    float64
}
