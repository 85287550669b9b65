package payslip

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/shopspring/decimal"
)

type PayslipServiceImpl struct {
	snapshots user.SnapshotService
	location  *time.Location
	now       func() time.Time
}

func NewPayslipService(snapshots user.SnapshotService, location *time.Location) payslip.PayslipService {
	return newPayslipService(snapshots, location)
}

func newPayslipService(snapshots user.SnapshotService, location *time.Location) *PayslipServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &PayslipServiceImpl{snapshots: snapshots, location: location, now: time.Now}
}

// List implements payslip.PayslipService.
func (s *PayslipServiceImpl) List(ctx context.Context) (payslip.PayslipListResponse, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return payslip.PayslipListResponse{}, err
	}

	slips := BuildPayslips(paymentsOf(snap.User), snap.User.Location(s.location))
	return payslip.PayslipListResponse{
		Payslips: slips,
		Summary:  Summarize(slips),
	}, nil
}

// Document implements payslip.PayslipService.
func (s *PayslipServiceImpl) Document(ctx context.Context, id string) (payslip.Document, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return payslip.Document{}, err
	}

	loc := snap.User.Location(s.location)
	for _, slip := range BuildPayslips(paymentsOf(snap.User), loc) {
		if slip.ID != id {
			continue
		}
		content, err := RenderDocument(snap.User, slip, s.now().In(loc))
		if err != nil {
			return payslip.Document{}, err
		}
		return payslip.Document{
			Filename: fmt.Sprintf("payslip-%s-%d.html", strings.ToLower(slip.Month), slip.Year),
			Content:  content,
		}, nil
	}
	return payslip.Document{}, payslip.ErrPayslipNotFound
}

func paymentsOf(u user.User) []payslip.Payment {
	if u.Employee == nil {
		return nil
	}
	return u.Employee.PaymentRecords()
}

// BuildPayslips maps payments to payslips, newest first. The paid amount is
// the net figure; deductions are whatever gross exceeds it by.
func BuildPayslips(payments []payslip.Payment, loc *time.Location) []payslip.Payslip {
	out := make([]payslip.Payslip, 0, len(payments))
	for _, p := range payments {
		net := p.Amount.Decimal
		overtime := p.OvertimeAmount.Decimal
		gross := p.BaseAmount.Decimal.Add(overtime)
		paid := p.PayDate.In(loc)

		out = append(out, payslip.Payslip{
			ID:         p.ID,
			Month:      paid.Month().String(),
			Year:       paid.Year(),
			GrossPay:   gross,
			NetPay:     net,
			Deductions: decimal.Max(decimal.Zero, gross.Sub(net)),
			Overtime:   overtime,
			Status:     MapStatus(p.Status),
			PayDate:    p.PayDate.Time,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].PayDate.After(out[j].PayDate) })
	return out
}

func MapStatus(status payslip.PaymentStatus) payslip.Availability {
	switch status {
	case payslip.PaymentPaid, payslip.PaymentCompleted:
		return payslip.Available
	case payslip.PaymentProcessing, payslip.PaymentPending:
		return payslip.Processing
	default:
		return payslip.Pending
	}
}

func Summarize(slips []payslip.Payslip) payslip.PayslipSummary {
	summary := payslip.PayslipSummary{TotalEarnings: decimal.Zero, TotalOvertime: decimal.Zero}
	for _, s := range slips {
		summary.TotalEarnings = summary.TotalEarnings.Add(s.NetPay)
		summary.TotalOvertime = summary.TotalOvertime.Add(s.Overtime)
		summary.Count++
	}
	return summary
}
