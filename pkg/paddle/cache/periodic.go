package cache

import (
	"context"
	"log/slog"
	"time"
)

// Refresher is anything with a full-rebuild refresh cycle.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RunPeriodic refreshes r every interval until ctx is canceled, with one
// immediate refresh up front. Errors are logged and the cycle is abandoned;
// the next tick is the retry. onCycle, when non-nil, observes each cycle's
// outcome (used for metrics).
func RunPeriodic(ctx context.Context, name string, r Refresher, interval time.Duration, onCycle func(name string, err error)) {
	refresh := func() {
		err := r.Refresh(ctx)
		if err != nil && ctx.Err() == nil {
			slog.Error("Cache refresh failed",
				slog.String("cache", name),
				slog.String("error", err.Error()),
			)
		}
		if onCycle != nil {
			onCycle(name, err)
		}
	}

	refresh()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}
