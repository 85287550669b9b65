package leave

import "github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/leave"

// Totals used when the employee record leaves an entitlement unset.
const (
	defaultAnnualDays    = 21
	defaultSickDays      = 30
	defaultStudyDays     = 5
	defaultMaternityDays = 120
	defaultPaternityDays = 10
	defaultUnpaidDays    = 0
)

type BalanceCalculator struct {
}

func NewBalanceCalculator() *BalanceCalculator {
	return &BalanceCalculator{}
}

// Calculate derives totals, approved usage and remaining days per leave
// type. A nil entitlement set means there is no employee and every entry
// is zero.
func (c *BalanceCalculator) Calculate(entitlements *leave.Entitlements, requests []leave.LeaveRequest) leave.LeaveBalance {
	var balance leave.LeaveBalance
	if entitlements == nil {
		return balance
	}

	balance.Annual.Total = orDefault(entitlements.Annual, defaultAnnualDays)
	balance.Sick.Total = orDefault(entitlements.Sick, defaultSickDays)
	balance.Study.Total = orDefault(entitlements.Study, defaultStudyDays)
	balance.Maternity.Total = orDefault(entitlements.Maternity, defaultMaternityDays)
	balance.Paternity.Total = orDefault(entitlements.Paternity, defaultPaternityDays)
	balance.Unpaid.Total = orDefault(entitlements.Unpaid, defaultUnpaidDays)

	for _, req := range requests {
		if req.Status != leave.StatusApproved {
			continue
		}
		if entry := c.entryFor(&balance, req.LeaveType); entry != nil {
			entry.Used += req.Days.Float64()
		}
	}

	for _, entry := range []*leave.BalanceEntry{
		&balance.Annual, &balance.Sick, &balance.Study,
		&balance.Maternity, &balance.Paternity, &balance.Unpaid,
	} {
		entry.Remaining = max(0, entry.Total-entry.Used)
	}

	return balance
}

// entryFor maps a leave type to its balance bucket. Compassionate leave has
// no bucket and is not counted.
func (c *BalanceCalculator) entryFor(balance *leave.LeaveBalance, t leave.LeaveType) *leave.BalanceEntry {
	switch t {
	case leave.TypeAnnual:
		return &balance.Annual
	case leave.TypeSick:
		return &balance.Sick
	case leave.TypeStudy:
		return &balance.Study
	case leave.TypeMaternity:
		return &balance.Maternity
	case leave.TypePaternity:
		return &balance.Paternity
	case leave.TypeUnpaid:
		return &balance.Unpaid
	case leave.TypeCompassionate:
		return nil
	default:
		return nil
	}
}

func orDefault(days, fallback float64) float64 {
	if days == 0 {
		return fallback
	}
	return days
}
