// cleanup.go - Background janitor for orphaned in-progress files.
package server

import (
	"context"
	"time"

	"submission-spool/internal/spool"
)

// CleanupConfig holds configuration for the temp-file janitor.
type CleanupConfig struct {
	Enabled  bool
	Interval time.Duration
	MaxAge   time.Duration
}

// StartCleanupJob periodically sweeps the spool for temp files older than
// MaxAge. Blocks until ctx is cancelled; run it in its own goroutine.
func StartCleanupJob(ctx context.Context, d *spool.Dir, cfg CleanupConfig) {
	if !cfg.Enabled {
		Info("temp janitor disabled", nil)
		return
	}

	Info("temp janitor starting", map[string]any{
		"interval": cfg.Interval.String(),
		"max_age":  cfg.MaxAge.String(),
	})

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	runSweep(d, cfg.MaxAge)

	for {
		select {
		case <-ctx.Done():
			Info("temp janitor stopping", nil)
			return
		case <-ticker.C:
			runSweep(d, cfg.MaxAge)
		}
	}
}

func runSweep(d *spool.Dir, maxAge time.Duration) {
	removed, err := d.SweepTemp(maxAge)
	if err != nil {
		Error("temp sweep failed", nil, err)
		return
	}
	if removed > 0 {
		Info("removed orphaned temp files", map[string]any{"count": removed})
	}
}
