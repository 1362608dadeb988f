// Package scheduler runs the periodic campaign expiry sweep.
package scheduler

import (
	"context"
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/utils"
	"go.uber.org/zap"
)

// Sweeper closes every campaign whose event date is before asOf.
type Sweeper interface {
	CloseExpired(ctx context.Context, asOf time.Time) (int64, error)
}

// Hourly sweeps at the top of every hour until ctx is done.
func Hourly(ctx context.Context, sweeper Sweeper) {
	Every(ctx, sweeper, time.Hour, time.Now)
}

// Every sweeps on each multiple of interval (wall clock aligned) until ctx is done.
func Every(ctx context.Context, sweeper Sweeper, interval time.Duration, now func() time.Time) {
	timer := time.NewTimer(untilNext(now(), interval))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			sweep(ctx, sweeper, now())
			timer.Reset(untilNext(now(), interval))
		}
	}
}

func sweep(ctx context.Context, sweeper Sweeper, asOf time.Time) {
	n, err := sweeper.CloseExpired(ctx, asOf)
	if err != nil {
		if ctx.Err() == nil {
			utils.Log.Error("expiry sweep failed", zap.Time("as_of", asOf), zap.Error(err))
		}
		return
	}
	utils.Log.Info("expiry sweep done", zap.Time("as_of", asOf), zap.Int64("closed", n))
}

func untilNext(t time.Time, interval time.Duration) time.Duration {
	next := t.Truncate(interval).Add(interval)
	return next.Sub(t)
}
