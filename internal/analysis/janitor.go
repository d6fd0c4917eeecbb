package analysis

import (
	"context"
	"time"

	"resume-studio/internal/shared/telemetry"
)

// Retention is how long analysis records are kept before the janitor
// removes them.
const Retention = 30 * 24 * time.Hour

// StartJanitor runs a purge loop in the background until ctx is done. One
// purge runs immediately so restarts do not postpone expiry by a full
// interval.
func StartJanitor(ctx context.Context, repo Repo, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		purge(ctx, repo)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				purge(ctx, repo)
			}
		}
	}()
}

func purge(ctx context.Context, repo Repo) {
	purged, err := repo.PurgeExpired(ctx, time.Now().UTC().Add(-Retention))
	if err != nil {
		telemetry.Error("analysis purge failed", map[string]any{"error": err.Error()})
		return
	}
	if purged > 0 {
		telemetry.Info("analysis records purged", map[string]any{"count": purged})
	}
}
