package payment

import (
	"context"
	"testing"
	"time"
)

func TestCountdownFiresExactlyOnceAtZero(t *testing.T) {
	countdown := NewCountdown(60)
	ticks := make(chan time.Time)
	fired := 0
	done := make(chan struct{})

	go func() {
		countdown.Run(context.Background(), ticks, func() { fired++ })
		close(done)
	}()

	// 59 simulated seconds: no hand-off yet
	for i := 0; i < 59; i++ {
		ticks <- time.Time{}
	}
	if fired != 0 {
		t.Fatalf("hand-off fired early after 59 ticks")
	}
	if got := countdown.Remaining(); got != 1 {
		t.Fatalf("Remaining() = %d, want 1", got)
	}

	// second 60 triggers the hand-off and ends the run
	ticks <- time.Time{}
	<-done

	if fired != 1 {
		t.Fatalf("hand-off fired %d times, want 1", fired)
	}

	// Re-entering at the same count (the re-render analog) must not retrigger
	rerun := make(chan time.Time, 3)
	rerun <- time.Time{}
	rerun <- time.Time{}
	rerun <- time.Time{}
	countdown.Run(context.Background(), rerun, func() { fired++ })

	if fired != 1 {
		t.Fatalf("hand-off retriggered on re-run, fired %d times", fired)
	}
}

func TestCountdownCancelledWithoutFiring(t *testing.T) {
	countdown := NewCountdown(5)
	ticks := make(chan time.Time)
	ctx, cancel := context.WithCancel(context.Background())
	fired := false
	done := make(chan struct{})

	go func() {
		countdown.Run(ctx, ticks, func() { fired = true })
		close(done)
	}()

	ticks <- time.Time{}
	ticks <- time.Time{}
	cancel()
	<-done

	if fired {
		t.Fatalf("hand-off fired despite cancellation")
	}
	if got := countdown.Remaining(); got != 3 {
		t.Fatalf("Remaining() = %d, want 3", got)
	}
}
