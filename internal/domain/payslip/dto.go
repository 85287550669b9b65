package payslip

import (
	"time"

	"github.com/shopspring/decimal"
)

type Availability string

const (
	Available  Availability = "Available"
	Processing Availability = "Processing"
	Pending    Availability = "Pending"
)

type Payslip struct {
	ID         string          `json:"id"`
	Month      string          `json:"month"`
	Year       int             `json:"year"`
	GrossPay   decimal.Decimal `json:"gross_pay"`
	NetPay     decimal.Decimal `json:"net_pay"`
	Deductions decimal.Decimal `json:"deductions"`
	Overtime   decimal.Decimal `json:"overtime"`
	Status     Availability    `json:"status"`
	PayDate    time.Time       `json:"pay_date"`
}

type PayslipSummary struct {
	TotalEarnings decimal.Decimal `json:"total_earnings"`
	TotalOvertime decimal.Decimal `json:"total_overtime"`
	Count         int             `json:"count"`
}

type PayslipListResponse struct {
	Payslips []Payslip      `json:"payslips"`
	Summary  PayslipSummary `json:"summary"`
}

// Document is a printable HTML payslip.
type Document struct {
	Filename string
	Content  []byte
}
