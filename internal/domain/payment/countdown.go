// internal/domain/payment/countdown.go
package payment

import (
	"context"
	"sync"
	"time"
)

// Countdown drives the delay between token receipt and the widget hand-off:
// a fixed number of units, decremented once per elapsed unit, firing the
// hand-off exactly once at zero. Re-running a finished countdown must not
// re-trigger the hand-off.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	fired     bool
}

// NewCountdown creates a countdown starting at the given number of seconds
func NewCountdown(seconds int) *Countdown {
	return &Countdown{remaining: seconds}
}

// Remaining returns the seconds left
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// tick decrements one unit and reports whether zero was reached
func (c *Countdown) tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining == 0
}

// fire returns true only for the first caller after zero is reached
func (c *Countdown) fire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fired || c.remaining > 0 {
		return false
	}
	c.fired = true
	return true
}

// Run decrements once per value received on ticks and calls handoff exactly
// once when the countdown reaches zero. Cancelling the context stops the
// countdown without firing, the teardown path for an abandoned flow.
func (c *Countdown) Run(ctx context.Context, ticks <-chan time.Time, handoff func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			if c.tick() {
				if c.fire() {
					handoff()
				}
				return
			}
		}
	}
}

// Start runs the countdown on a real one-second ticker in its own goroutine
func (c *Countdown) Start(ctx context.Context, handoff func()) {
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		c.Run(ctx, ticker.C, handoff)
	}()
}
