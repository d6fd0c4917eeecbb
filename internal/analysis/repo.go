package analysis

import (
	"context"
	"time"
)

// Repo defines persistence operations for analysis records. Every read is
// scoped to the owning user.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, userID, analysisID string) (Analysis, error)
	// ListByUser returns one page of records newest-first along with the
	// user's total record count.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, int, error)
	// PurgeExpired deletes records created before the cutoff and reports how
	// many were removed.
	PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
