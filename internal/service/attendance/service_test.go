package attendance

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/config"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSnapshots struct {
	snap      user.Snapshot
	after     *user.Snapshot
	refreshes int
}

func (f *fakeSnapshots) Current(ctx context.Context) (user.Snapshot, error) { return f.snap, nil }

func (f *fakeSnapshots) Refresh(ctx context.Context) (user.Snapshot, error) {
	f.refreshes++
	if f.after != nil {
		f.snap = *f.after
	}
	return f.snap, nil
}

func (f *fakeSnapshots) RefreshAll(ctx context.Context) error { return nil }

func (f *fakeSnapshots) OverrideTaskStatus(ctx context.Context, taskID string, status task.Status) (user.Snapshot, error) {
	return f.snap, nil
}

type fakeAttendanceRepo struct {
	checkIns  []attendance.Payload
	checkOuts map[string]attendance.Payload
}

func (f *fakeAttendanceRepo) CheckIn(ctx context.Context, p attendance.Payload) (json.RawMessage, error) {
	f.checkIns = append(f.checkIns, p)
	return json.RawMessage(`{"id":"att-new"}`), nil
}

func (f *fakeAttendanceRepo) CheckOut(ctx context.Context, recordID string, p attendance.Payload) (json.RawMessage, error) {
	if f.checkOuts == nil {
		f.checkOuts = make(map[string]attendance.Payload)
	}
	f.checkOuts[recordID] = p
	return json.RawMessage(`{"id":"` + recordID + `"}`), nil
}

var sast = time.FixedZone("SAST", 2*60*60)

// Wednesday 11 March 2026, 10:00 SAST.
var fixedNow = time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func record(id string, day int, status attendance.Status) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{
		ID:     id,
		Date:   utils.NewTime(time.Date(2026, 3, day, 0, 0, 0, 0, sast)),
		Status: status,
	}
}

func userWith(records ...attendance.AttendanceRecord) user.User {
	return user.User{Employee: &user.Employee{EmployeeNumber: "EMP-7", AttendanceRecords: records}}
}

func TestTodayStatus(t *testing.T) {
	open := record("today", 11, attendance.StatusPresent)
	open.CheckIn = utils.NewTime(fixedNow.Add(-90 * time.Minute))
	open.CheckInLat = -26.2041
	open.CheckInLng = 28.0473

	status := TodayStatus(userWith(record("yesterday", 10, attendance.StatusPresent), open), fixedNow, sast)

	assert.True(t, status.CheckedIn)
	assert.Equal(t, "today", *status.RecordID)
	assert.Equal(t, "Unknown Location", status.Location)
	require.NotNil(t, status.Coordinates)
	assert.Equal(t, -26.2041, status.Coordinates.Latitude)
	assert.Equal(t, 1.5, status.SessionHours)
}

func TestTodayStatus_ClosedAndMissing(t *testing.T) {
	closed := record("today", 11, attendance.StatusPresent)
	closed.CheckIn = utils.NewTime(fixedNow.Add(-2 * time.Hour))
	closed.CheckOut = utils.NewTime(fixedNow.Add(-time.Hour))
	closed.CheckInAddress = ptr("12 Main Rd")
	closed.CheckInLat = -26.2

	status := TodayStatus(userWith(closed), fixedNow, sast)
	assert.False(t, status.CheckedIn)
	assert.Equal(t, "12 Main Rd", status.Location)
	assert.Nil(t, status.Coordinates, "coordinates need both lat and lng")
	assert.Zero(t, status.SessionHours)

	none := TodayStatus(userWith(record("old", 2, attendance.StatusPresent)), fixedNow, sast)
	assert.Equal(t, attendance.CheckInStatus{CheckedIn: false}, none)
}

func TestSessionHours(t *testing.T) {
	assert.Zero(t, SessionHours(nil, fixedNow))
	assert.Zero(t, SessionHours(ptr(fixedNow.Add(time.Hour)), fixedNow))
	assert.Equal(t, 2.3, SessionHours(ptr(fixedNow.Add(-137*time.Minute)), fixedNow))
}

func TestWeeklyStats(t *testing.T) {
	mon := record("mon", 9, attendance.StatusPresent)
	mon.RegularHours = 8
	mon.OvertimeHours = 1.25
	tue := record("tue", 10, attendance.StatusLate)
	tue.RegularHours = 7.5
	prevSun := record("sun", 8, attendance.StatusPresent)
	prevSun.RegularHours = 9

	stats := WeeklyStats(userWith(mon, tue, prevSun), fixedNow, sast)
	assert.Equal(t, attendance.WeeklyStats{HoursWorked: 16.8, Overtime: 1.3, DaysPresent: 1, TotalDays: 5}, stats)

	u := userWith()
	u.Employee.WorkingDays = []string{"MON", "TUE", "WED", "THU"}
	assert.Equal(t, 4, WeeklyStats(u, fixedNow, sast).TotalDays)
	assert.Equal(t, 5, WeeklyStats(user.User{}, fixedNow, sast).TotalDays)
}

func newTestService(snaps *fakeSnapshots, repo *fakeAttendanceRepo, office config.OfficeConfig) *AttendanceServiceImpl {
	svc := newAttendanceService(snaps, repo, office, sast)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCheckIn(t *testing.T) {
	after := userWith(func() attendance.AttendanceRecord {
		r := record("att-new", 11, attendance.StatusPresent)
		r.CheckIn = utils.NewTime(fixedNow)
		return r
	}())
	snaps := &fakeSnapshots{snap: user.Snapshot{User: userWith()}, after: &user.Snapshot{User: after}}
	repo := &fakeAttendanceRepo{}
	svc := newTestService(snaps, repo, config.OfficeConfig{})

	status, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{
		Latitude:  ptr(-26.2041),
		Longitude: ptr(28.0473),
		Address:   "Head office",
	})
	require.NoError(t, err)
	assert.True(t, status.CheckedIn)
	assert.Equal(t, "att-new", *status.RecordID)
	assert.Equal(t, 1, snaps.refreshes)

	require.Len(t, repo.checkIns, 1)
	p := repo.checkIns[0]
	assert.Equal(t, "EMP-7", p.EmployeeID)
	assert.Equal(t, "2026-03-11T08:00:00.000Z", p.Timestamp)
	assert.Equal(t, p.Timestamp, p.Date)
	assert.Equal(t, attendance.MethodGPS, p.Method)
	assert.Equal(t, -26.2041, *p.Lat)
}

func TestCheckIn_Preconditions(t *testing.T) {
	open := record("today", 11, attendance.StatusPresent)
	open.CheckIn = utils.NewTime(fixedNow.Add(-time.Hour))
	office := config.OfficeConfig{Latitude: -26.2041, Longitude: 28.0473, RadiusMeters: 200}

	tests := []struct {
		name    string
		user    user.User
		office  config.OfficeConfig
		req     attendance.CheckInRequest
		wantErr error
	}{
		{"no employee", user.User{}, config.OfficeConfig{}, attendance.CheckInRequest{}, attendance.ErrEmployeeNotFound},
		{"already checked in", userWith(open), config.OfficeConfig{}, attendance.CheckInRequest{}, attendance.ErrAlreadyCheckedIn},
		{"location required", userWith(), office, attendance.CheckInRequest{}, attendance.ErrLocationRequired},
		{
			"outside radius", userWith(), office,
			attendance.CheckInRequest{Latitude: ptr(-33.9249), Longitude: ptr(18.4241)},
			attendance.ErrOutsideAllowedRadius,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAttendanceRepo{}
			svc := newTestService(&fakeSnapshots{snap: user.Snapshot{User: tt.user}}, repo, tt.office)

			_, err := svc.CheckIn(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, repo.checkIns)
		})
	}
}

func TestCheckIn_InsideRadius(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	office := config.OfficeConfig{Latitude: -26.2041, Longitude: 28.0473, RadiusMeters: 200}
	svc := newTestService(&fakeSnapshots{snap: user.Snapshot{User: userWith()}}, repo, office)

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{Latitude: ptr(-26.2045), Longitude: ptr(28.0470)})
	require.NoError(t, err)
	assert.Len(t, repo.checkIns, 1)
}

func TestCheckIn_Validation(t *testing.T) {
	svc := newTestService(&fakeSnapshots{}, &fakeAttendanceRepo{}, config.OfficeConfig{})

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{Latitude: ptr(95.0), Longitude: ptr(10.0), Method: "FACE"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "latitude")
	assert.Contains(t, verrs.ToMap(), "method")
}

func TestCheckOut(t *testing.T) {
	open := record("att-1", 11, attendance.StatusPresent)
	open.CheckIn = utils.NewTime(fixedNow.Add(-3 * time.Hour))
	repo := &fakeAttendanceRepo{}
	snaps := &fakeSnapshots{snap: user.Snapshot{User: userWith(open)}}
	svc := newTestService(snaps, repo, config.OfficeConfig{})

	_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{Address: "Site B"})
	require.NoError(t, err)
	require.Contains(t, repo.checkOuts, "att-1")
	assert.Equal(t, attendance.Payload{Timestamp: "2026-03-11T08:00:00.000Z", Address: "Site B"}, repo.checkOuts["att-1"])
	assert.Equal(t, 1, snaps.refreshes)
}

func TestCheckOut_NoActiveRecord(t *testing.T) {
	repo := &fakeAttendanceRepo{}
	svc := newTestService(&fakeSnapshots{snap: user.Snapshot{User: userWith()}}, repo, config.OfficeConfig{})

	_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNoActiveRecord)
	assert.Empty(t, repo.checkOuts)
}
