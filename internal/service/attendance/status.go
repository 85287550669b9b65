package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

const (
	unknownLocation    = "Unknown Location"
	defaultWorkingDays = 5
	nanosPerHour       = float64(time.Hour)
)

// TodayRecord returns the first record dated on now's calendar day in loc.
func TodayRecord(records []attendance.AttendanceRecord, now time.Time, loc *time.Location) (attendance.AttendanceRecord, bool) {
	for _, r := range records {
		if utils.SameDay(r.Date.Time, now, loc) {
			return r, true
		}
	}
	return attendance.AttendanceRecord{}, false
}

// TodayStatus describes today's attendance. The user counts as checked in
// only while today's record has a check-in and no check-out.
func TodayStatus(u user.User, now time.Time, loc *time.Location) attendance.CheckInStatus {
	record, ok := TodayRecord(u.AttendanceRecords(), now, loc)
	if !ok {
		return attendance.CheckInStatus{CheckedIn: false}
	}

	id := record.ID
	status := attendance.CheckInStatus{
		CheckedIn:    record.IsOpen(),
		RecordID:     &id,
		CheckInTime:  record.CheckIn.Ptr(),
		CheckOutTime: record.CheckOut.Ptr(),
		Location:     unknownLocation,
	}
	if record.CheckInAddress != nil && *record.CheckInAddress != "" {
		status.Location = *record.CheckInAddress
	}
	if lat, lng := record.CheckInLat.Float64(), record.CheckInLng.Float64(); lat != 0 && lng != 0 {
		status.Coordinates = &attendance.Coordinates{Latitude: lat, Longitude: lng}
	}
	if status.CheckedIn {
		status.SessionHours = SessionHours(record.CheckIn.Ptr(), now)
	}
	return status
}

// SessionHours is the time since check-in in hours, one decimal, never
// negative.
func SessionHours(checkIn *time.Time, now time.Time) float64 {
	if checkIn == nil {
		return 0
	}
	return max(0, utils.RoundTo(float64(now.Sub(*checkIn))/nanosPerHour, 1))
}

// WeeklyStats sums the Monday-to-Sunday week containing now.
func WeeklyStats(u user.User, now time.Time, loc *time.Location) attendance.WeeklyStats {
	start := utils.StartOfWeek(now, loc)
	end := start.AddDate(0, 0, 7)

	var regular, overtime float64
	present := 0
	for _, r := range u.AttendanceRecords() {
		if r.Date.Before(start) || !r.Date.Before(end) {
			continue
		}
		regular += r.RegularHours.Float64()
		overtime += r.OvertimeHours.Float64()
		if r.Status == attendance.StatusPresent {
			present++
		}
	}

	totalDays := defaultWorkingDays
	if u.Employee != nil && len(u.Employee.WorkingDays) > 0 {
		totalDays = len(u.Employee.WorkingDays)
	}

	return attendance.WeeklyStats{
		HoursWorked: utils.RoundTo(regular+overtime, 1),
		Overtime:    utils.RoundTo(overtime, 1),
		DaysPresent: present,
		TotalDays:   totalDays,
	}
}
