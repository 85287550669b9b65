package user

import (
	"context"

	"github.com/cmlabs-hris/hris-mobile-gateway/internal/domain/task"
)

// SnapshotService holds the latest user record per session.
type SnapshotService interface {
	// Current returns the stored snapshot, fetching it on first use.
	Current(ctx context.Context) (Snapshot, error)
	// Refresh fetches the record again and replaces the stored snapshot.
	Refresh(ctx context.Context) (Snapshot, error)
	// RefreshAll refreshes every known session. Used by the background job.
	RefreshAll(ctx context.Context) error
	// OverrideTaskStatus records a local status change that is shown until
	// the next refresh.
	OverrideTaskStatus(ctx context.Context, taskID string, status task.Status) (Snapshot, error)
}

type ProfileService interface {
	GetProfile(ctx context.Context) (ProfileResponse, error)
	Refresh(ctx context.Context) (ProfileResponse, error)
}
