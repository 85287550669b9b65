package performance

import "context"

type PerformanceService interface {
	History(ctx context.Context, days int) (HistoryResponse, error)
}
