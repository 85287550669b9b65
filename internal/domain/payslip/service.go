package payslip

import "context"

type PayslipService interface {
	List(ctx context.Context) (PayslipListResponse, error)
	Document(ctx context.Context, id string) (Document, error)
}
