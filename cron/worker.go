package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// evictEvery is how often idle clients are swept.
const evictEvery = "@every 10m"

// Refresher is what the scheduler drives on every tick.
type Refresher interface {
	ResumeAll(ctx context.Context)
	Evict(idle time.Duration) int
}

// StartRefreshWorker schedules the refresh-on-resume subscriptions of every
// client on schedule and sweeps clients idle for longer than idle. An empty
// schedule disables the refresh job; the sweep always runs.
func StartRefreshWorker(schedule string, idle time.Duration, r Refresher, logger *zap.Logger) (*cron.Cron, error) {
	c := cron.New()

	if schedule != "" {
		if _, err := c.AddFunc(schedule, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			logger.Debug("Running scheduled client refresh")
			r.ResumeAll(ctx)
		}); err != nil {
			return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
		}
	}

	if _, err := c.AddFunc(evictEvery, func() {
		if n := r.Evict(idle); n > 0 {
			logger.Info("Evicted idle clients", zap.Int("count", n))
		}
	}); err != nil {
		return nil, err
	}

	c.Start()
	logger.Info("Refresh worker started", zap.String("schedule", schedule))
	return c, nil
}
