package leave

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/leave"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
)

type LeaveServiceImpl struct {
	snapshots user.SnapshotService
	leave.LeaveRepository
	calculator *BalanceCalculator
}

func NewLeaveService(snapshots user.SnapshotService, leaveRepo leave.LeaveRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		snapshots:       snapshots,
		LeaveRepository: leaveRepo,
		calculator:      NewBalanceCalculator(),
	}
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	return BuildRequests(snap.User), nil
}

// Balance implements leave.LeaveService.
func (s *LeaveServiceImpl) Balance(ctx context.Context) (leave.LeaveBalance, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return leave.LeaveBalance{}, err
	}
	return s.CalculateBalance(snap.User), nil
}

func (s *LeaveServiceImpl) CalculateBalance(u user.User) leave.LeaveBalance {
	if u.Employee == nil {
		return s.calculator.Calculate(nil, nil)
	}
	entitlements := u.Employee.Entitlements()
	return s.calculator.Calculate(&entitlements, u.Employee.LeaveRequests)
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	if snap.User.Employee == nil || snap.User.Employee.EmployeeNumber == "" {
		return nil, leave.ErrEmployeeNotFound
	}

	result, err := s.LeaveRepository.CreateLeave(ctx, leave.CreatePayload{
		EmployeeID:  snap.User.Employee.EmployeeNumber,
		LeaveType:   req.LeaveType,
		StartDate:   utils.FormatISO(req.Start),
		EndDate:     utils.FormatISO(req.End),
		Days:        req.Days,
		Reason:      req.Reason,
		ContactInfo: req.ContactInfo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to submit leave request: %w", err)
	}

	if _, err := s.snapshots.Refresh(ctx); err != nil {
		slog.Warn("Snapshot refresh after leave request failed", "error", err)
	}
	return result, nil
}

// BuildRequests lists the employee's leave requests, most recently
// requested first.
func BuildRequests(u user.User) []leave.LeaveRequestResponse {
	out := make([]leave.LeaveRequestResponse, 0)
	if u.Employee == nil {
		return out
	}
	for _, r := range u.Employee.LeaveRequests {
		out = append(out, leave.LeaveRequestResponse{
			ID:            r.ID,
			LeaveType:     r.LeaveType,
			StartDate:     r.StartDate.Time,
			EndDate:       r.EndDate.Time,
			Days:          r.Days.Float64(),
			Reason:        r.Reason,
			Status:        r.Status,
			RequestedDate: r.RequestedDate.Time,
			ApprovedBy:    r.ApprovedBy,
			Comments:      r.Comments,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RequestedDate.After(out[j].RequestedDate)
	})
	return out
}
