package winblit

import (
	"context"
	"errors"
	"time"
)

// TickerConfig controls Run.
type TickerConfig struct {
	// Interval between ticks. Defaults to one second.
	Interval time.Duration

	// Ticks is the number of ticks before Run returns. Zero means run until
	// the context is canceled.
	Ticks int
}

// DefaultTickerConfig fires twice, one second apart.
var DefaultTickerConfig = TickerConfig{Interval: time.Second, Ticks: 2}

// Run calls Tick immediately and then once per interval until cfg.Ticks
// ticks have run, the Renderer's tick limit is reached, or ctx is done.
// A cycle in progress always runs to completion. Per-cycle failures are
// logged and do not stop the loop.
//
// Run returns nil when the tick count is exhausted and ctx.Err() when the
// context ends first.
func (r *Renderer) Run(ctx context.Context, cfg TickerConfig) error {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Second
	}
	log := Logger()
	log.Info("winblit: ticker started", "interval", cfg.Interval, "ticks", cfg.Ticks)

	t := time.NewTicker(cfg.Interval)
	defer t.Stop()

	for n := 0; ; {
		rep, err := r.Tick(ctx)
		switch {
		case errors.Is(err, ErrTickLimit):
			log.Info("winblit: ticker stopped", "reason", "tick limit")
			return nil
		case err != nil && ctx.Err() != nil:
			log.Info("winblit: ticker stopped", "reason", ctx.Err())
			return ctx.Err()
		case err != nil:
			log.Warn("winblit: tick failed", "outcome", rep.Outcome, "err", err)
		}

		n++
		if cfg.Ticks > 0 && n >= cfg.Ticks {
			log.Info("winblit: ticker stopped", "ticks", n)
			return nil
		}

		select {
		case <-ctx.Done():
			log.Info("winblit: ticker stopped", "reason", ctx.Err())
			return ctx.Err()
		case <-t.C:
		}
	}
}
