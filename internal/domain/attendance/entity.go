package attendance

import (
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

// Status is the upstream attendance status code.
type Status string

const (
	StatusPresent        Status = "PRESENT"
	StatusAbsent         Status = "ABSENT"
	StatusLate           Status = "LATE"
	StatusHalfDay        Status = "HALF_DAY"
	StatusSickLeave      Status = "SICK_LEAVE"
	StatusAnnualLeave    Status = "ANNUAL_LEAVE"
	StatusUnpaidLeave    Status = "UNPAID_LEAVE"
	StatusMaternityLeave Status = "MATERNITY_LEAVE"
	StatusPaternityLeave Status = "PATERNITY_LEAVE"
	StatusStudyLeave     Status = "STUDY_LEAVE"
)

type CheckInMethod string

const (
	MethodGPS     CheckInMethod = "GPS"
	MethodManual  CheckInMethod = "MANUAL"
	MethodBarcode CheckInMethod = "BARCODE"
)

// AttendanceRecord is one day of attendance as served by the backend.
type AttendanceRecord struct {
	ID             string       `json:"id"`
	Date           utils.Time   `json:"date"`
	Status         Status       `json:"status"`
	CheckIn        utils.Time   `json:"checkIn"`
	CheckOut       utils.Time   `json:"checkOut"`
	RegularHours   utils.Number `json:"regularHours"`
	OvertimeHours  utils.Number `json:"overtimeHours"`
	CheckInAddress *string      `json:"checkInAddress"`
	CheckInLat     utils.Number `json:"checkInLat"`
	CheckInLng     utils.Number `json:"checkInLng"`
}

// IsOpen reports whether the record has a check-in without a check-out.
func (r AttendanceRecord) IsOpen() bool {
	return !r.CheckIn.IsZero() && r.CheckOut.IsZero()
}
