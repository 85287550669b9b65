package attendance

import (
	"context"
	"encoding/json"
)

type AttendanceService interface {
	GetTodayStatus(ctx context.Context) (CheckInStatus, error)
	GetWeeklyStats(ctx context.Context) (WeeklyStats, error)
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInStatus, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckInStatus, error)
}

// AttendanceRepository is the backend surface for attendance actions.
type AttendanceRepository interface {
	CheckIn(ctx context.Context, payload Payload) (json.RawMessage, error)
	CheckOut(ctx context.Context, recordID string, payload Payload) (json.RawMessage, error)
}
