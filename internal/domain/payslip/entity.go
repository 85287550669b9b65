package payslip

import (
	"bytes"
	"encoding/json"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING"
	PaymentProcessing    PaymentStatus = "PROCESSING"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentCompleted     PaymentStatus = "COMPLETED"
	PaymentFailed        PaymentStatus = "FAILED"
	PaymentCancelled     PaymentStatus = "CANCELLED"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
)

// Money is a decimal amount that reads JSON numbers, numeric strings and
// null. Anything unparsable becomes zero.
type Money struct {
	decimal.Decimal
}

func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(bytes.TrimSpace(data), `"`)
	if len(data) == 0 || string(data) == "null" {
		m.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		m.Decimal = decimal.Zero
		return nil
	}
	m.Decimal = d
	return nil
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.InexactFloat64())
}

type Payment struct {
	ID             string        `json:"id"`
	Amount         Money         `json:"amount"`
	BaseAmount     Money         `json:"baseAmount"`
	OvertimeAmount Money         `json:"overtimeAmount"`
	OvertimeHours  Money         `json:"overtimeHours"`
	PayDate        utils.Time    `json:"payDate"`
	Status         PaymentStatus `json:"status"`
	Description    string        `json:"description"`
}
