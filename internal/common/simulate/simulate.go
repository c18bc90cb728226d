// Package simulate imitates the latency of systems this service pretends to
// talk to, such as a payment processor.
package simulate

import (
	"context"
	"time"
)

// Delay waits d or until ctx ends, whichever is first.
func Delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
