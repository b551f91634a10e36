package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/showcase/internal/browse"
)

const (
	defaultRefreshInterval = 5 * time.Minute
	refreshRetryBase       = 2 * time.Second
	maxBackoff             = 30 * time.Second
)

// StartRefresher launches a background goroutine that re-reads the catalog
// size at a fixed cadence so products added or removed upstream are picked
// up. Failed refreshes are retried with exponential backoff. It returns
// immediately.
//
// A reload issued here takes a new fetch token, so it supersedes any
// navigation still in flight and that navigation's result is dropped.
func StartRefresher(ctx context.Context, ctrl *browse.Controller, interval time.Duration, log *zap.Logger) {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			if err := refresh(ctx, ctrl); err != nil {
				if ctx.Err() != nil {
					return
				}
				failures++
				wait := calculateBackoff(failures, refreshRetryBase)
				log.Warn("catalog refresh failed",
					zap.Error(err),
					zap.Int("failures", failures),
					zap.Duration("retry_in", wait),
				)
				timer.Reset(wait)
				continue
			}

			if failures > 0 {
				log.Info("catalog refresh recovered", zap.Int("failures", failures))
			}
			failures = 0
			timer.Reset(interval)
		}
	}()
}

// refresh re-runs Init and reloads when the current product fell outside
// the new catalog range.
func refresh(ctx context.Context, ctrl *browse.Controller) error {
	before := ctrl.State().CurrentID
	if err := ctrl.Init(ctx); err != nil {
		return err
	}
	if ctrl.State().CurrentID != before {
		return ctrl.Load(ctx)
	}
	return nil
}

// calculateBackoff doubles base for each consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for range failures {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
