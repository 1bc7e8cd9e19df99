package publisher

import (
	"context"
	"time"
)

// Pacer decides how long to wait after a successful creation.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedDelay waits the same duration after every success.
type FixedDelay time.Duration

func (d FixedDelay) Wait(ctx context.Context) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoDelay never waits.
type NoDelay struct{}

func (NoDelay) Wait(context.Context) error { return nil }
