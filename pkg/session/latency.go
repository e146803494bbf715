package session

import (
	"context"
	"time"
)

// Latency models the simulated network round-trip login and signup wait out
// before resolving. It exists so the delay is injectable: tests run with
// NoLatency, the demo server keeps the original one-second feel.
type Latency interface {
	Wait(ctx context.Context) error
}

// FixedLatency sleeps for a constant duration, honoring cancellation. A
// cancelled wait returns the context's error and the caller must leave
// session state untouched.
type FixedLatency time.Duration

func (d FixedLatency) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var (
	DefaultLatency = FixedLatency(time.Second)
	NoLatency      = FixedLatency(0)
)
