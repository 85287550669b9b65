package statistics

import (
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

// AttendanceWeight maps a status to its score weight. Unknown statuses
// weigh nothing.
func AttendanceWeight(status attendance.Status) float64 {
	switch status {
	case attendance.StatusPresent:
		return 1.0
	case attendance.StatusHalfDay:
		return 0.8
	case attendance.StatusLate:
		return 0.7
	case attendance.StatusSickLeave,
		attendance.StatusAnnualLeave,
		attendance.StatusMaternityLeave,
		attendance.StatusPaternityLeave,
		attendance.StatusStudyLeave:
		return 0.5
	case attendance.StatusUnpaidLeave:
		return 0.3
	case attendance.StatusAbsent:
		return 0.0
	default:
		return 0.0
	}
}

// AttendanceRate averages the record weights as a 0-100 percentage.
// No records yields 100.
func AttendanceRate(records []attendance.AttendanceRecord) float64 {
	if len(records) == 0 {
		return 100
	}

	var total float64
	for _, r := range records {
		total += AttendanceWeight(r.Status)
	}
	return float64(utils.RoundHalfUp(total / float64(len(records)) * 100))
}

// OvertimeHours sums overtime across records, rounded to 2 decimals.
func OvertimeHours(records []attendance.AttendanceRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.OvertimeHours.Float64()
	}
	return utils.RoundTo(total, 2)
}
