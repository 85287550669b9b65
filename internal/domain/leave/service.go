package leave

import (
	"context"
	"encoding/json"
)

type LeaveService interface {
	List(ctx context.Context) ([]LeaveRequestResponse, error)
	Balance(ctx context.Context) (LeaveBalance, error)
	Create(ctx context.Context, req CreateLeaveRequest) (json.RawMessage, error)
}

type LeaveRepository interface {
	CreateLeave(ctx context.Context, payload CreatePayload) (json.RawMessage, error)
}
