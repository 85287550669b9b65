package performance

import (
	"context"
	"time"
)

type HistoryRepository interface {
	Upsert(ctx context.Context, snapshot Snapshot) error
	// UpsertMany records a whole refresh cycle atomically.
	UpsertMany(ctx context.Context, snapshots []Snapshot) error
	ListByUser(ctx context.Context, userID string, since time.Time) ([]Snapshot, error)
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
