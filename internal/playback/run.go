package playback

import (
	"context"
	"time"
)

// Run plays c to the end outside of a TUI event loop, calling onStep with the
// controller after every advance (and once before the first tick). It returns
// nil when playback reaches the end and ctx.Err() when cancelled; either way
// the controller is left paused and the ticker is stopped.
func Run(ctx context.Context, c *Controller, interval time.Duration, onStep func(*Controller)) error {
	if !c.Play() {
		return nil
	}
	gen := c.Generation()
	onStep(c)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.Pause()
			return ctx.Err()
		case <-ticker.C:
			if !c.Tick(gen) {
				return nil
			}
			onStep(c)
		}
	}
}
