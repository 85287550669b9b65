package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/config"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	snapshots user.SnapshotService
	attendance.AttendanceRepository
	office   config.OfficeConfig
	location *time.Location
	now      func() time.Time
}

func NewAttendanceService(
	snapshots user.SnapshotService,
	attendanceRepo attendance.AttendanceRepository,
	office config.OfficeConfig,
	location *time.Location,
) attendance.AttendanceService {
	return newAttendanceService(snapshots, attendanceRepo, office, location)
}

func newAttendanceService(
	snapshots user.SnapshotService,
	attendanceRepo attendance.AttendanceRepository,
	office config.OfficeConfig,
	location *time.Location,
) *AttendanceServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		snapshots:            snapshots,
		AttendanceRepository: attendanceRepo,
		office:               office,
		location:             location,
		now:                  time.Now,
	}
}

// GetTodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayStatus(ctx context.Context) (attendance.CheckInStatus, error) {
	snap, err := a.snapshots.Current(ctx)
	if err != nil {
		return attendance.CheckInStatus{}, err
	}
	return TodayStatus(snap.User, a.now(), snap.User.Location(a.location)), nil
}

// GetWeeklyStats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetWeeklyStats(ctx context.Context) (attendance.WeeklyStats, error) {
	snap, err := a.snapshots.Current(ctx)
	if err != nil {
		return attendance.WeeklyStats{}, err
	}
	return WeeklyStats(snap.User, a.now(), snap.User.Location(a.location)), nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInStatus, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInStatus{}, err
	}

	snap, err := a.snapshots.Current(ctx)
	if err != nil {
		return attendance.CheckInStatus{}, err
	}
	if snap.User.Employee == nil || snap.User.Employee.EmployeeNumber == "" {
		return attendance.CheckInStatus{}, attendance.ErrEmployeeNotFound
	}

	nowUTC := a.now().UTC()
	loc := snap.User.Location(a.location)
	if TodayStatus(snap.User, nowUTC, loc).CheckedIn {
		return attendance.CheckInStatus{}, attendance.ErrAlreadyCheckedIn
	}
	if err := a.checkGeofence(req.Latitude, req.Longitude); err != nil {
		return attendance.CheckInStatus{}, err
	}

	_, err = a.AttendanceRepository.CheckIn(ctx, attendance.Payload{
		EmployeeID: snap.User.Employee.EmployeeNumber,
		Date:       utils.FormatISO(nowUTC),
		Timestamp:  utils.FormatISO(nowUTC),
		Lat:        req.Latitude,
		Lng:        req.Longitude,
		Address:    req.Address,
		PhotoURL:   req.PhotoURL,
		Method:     req.Method,
	})
	if err != nil {
		return attendance.CheckInStatus{}, fmt.Errorf("failed to check in: %w", err)
	}

	return a.statusAfterAction(ctx, snap.User), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckInStatus, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInStatus{}, err
	}

	snap, err := a.snapshots.Current(ctx)
	if err != nil {
		return attendance.CheckInStatus{}, err
	}

	nowUTC := a.now().UTC()
	status := TodayStatus(snap.User, nowUTC, snap.User.Location(a.location))
	if !status.CheckedIn || status.RecordID == nil {
		return attendance.CheckInStatus{}, attendance.ErrNoActiveRecord
	}

	_, err = a.AttendanceRepository.CheckOut(ctx, *status.RecordID, attendance.Payload{
		Timestamp: utils.FormatISO(nowUTC),
		Lat:       req.Latitude,
		Lng:       req.Longitude,
		Address:   req.Address,
		PhotoURL:  req.PhotoURL,
	})
	if err != nil {
		return attendance.CheckInStatus{}, fmt.Errorf("failed to check out record %s: %w", *status.RecordID, err)
	}

	return a.statusAfterAction(ctx, snap.User), nil
}

// checkGeofence enforces the office radius when one is configured.
func (a *AttendanceServiceImpl) checkGeofence(lat, lng *float64) error {
	if a.office.RadiusMeters <= 0 {
		return nil
	}
	if lat == nil || lng == nil {
		return attendance.ErrLocationRequired
	}
	if !utils.IsWithinRadius(*lat, *lng, a.office.Latitude, a.office.Longitude, a.office.RadiusMeters) {
		return attendance.ErrOutsideAllowedRadius
	}
	return nil
}

// statusAfterAction refreshes the snapshot and reports the new status. When
// the refresh fails the previous record is used.
func (a *AttendanceServiceImpl) statusAfterAction(ctx context.Context, previous user.User) attendance.CheckInStatus {
	u := previous
	if snap, err := a.snapshots.Refresh(ctx); err != nil {
		slog.Warn("Snapshot refresh after attendance action failed", "error", err)
	} else {
		u = snap.User
	}
	return TodayStatus(u, a.now(), u.Location(a.location))
}
