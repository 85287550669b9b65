package payslip

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/payslip"
	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/user"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplate = template.Must(template.ParseFS(templateFS, "templates/payslip.html"))

const (
	defaultEmployeeName = "Employee"
	notAvailable        = "N/A"
	unassignedDept      = "Unassigned"
)

type documentData struct {
	Period         string
	EmployeeName   string
	EmployeeNumber string
	Department     string
	Position       string
	BasicSalary    string
	Overtime       string
	Deductions     string
	GrossPay       string
	NetPay         string
	GeneratedOn    string
}

// RenderDocument renders a printable payslip for u. Basic salary is gross
// less overtime.
func RenderDocument(u user.User, slip payslip.Payslip, generated time.Time) ([]byte, error) {
	data := documentData{
		Period:         fmt.Sprintf("%s %d", slip.Month, slip.Year),
		EmployeeName:   employeeName(u),
		EmployeeNumber: notAvailable,
		Department:     unassignedDept,
		Position:       notAvailable,
		BasicSalary:    FormatRand(slip.GrossPay.Sub(slip.Overtime)),
		Overtime:       FormatRand(slip.Overtime),
		Deductions:     FormatRand(slip.Deductions),
		GrossPay:       FormatRand(slip.GrossPay),
		NetPay:         FormatRand(slip.NetPay),
		GeneratedOn:    generated.Format("2 January 2006"),
	}
	if e := u.Employee; e != nil {
		if e.EmployeeNumber != "" {
			data.EmployeeNumber = e.EmployeeNumber
		}
		if e.Position != "" {
			data.Position = e.Position
		}
		if e.Department != nil && e.Department.Name != "" {
			data.Department = e.Department.Name
		}
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render payslip %s: %w", slip.ID, err)
	}
	return buf.Bytes(), nil
}

func employeeName(u user.User) string {
	if u.Employee != nil && u.Employee.FirstName != "" {
		return u.Employee.FullName()
	}
	if u.Name != "" {
		return u.Name
	}
	return defaultEmployeeName
}

// FormatRand formats an amount the South African way: "R 12 345,60".
func FormatRand(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	whole, cents, _ := strings.Cut(amount.StringFixed(2), ".")

	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(r)
	}
	return "R " + sign + grouped.String() + "," + cents
}
