package services

import (
	"context"
	"time"
)

// withTimeout bounds ctx by d. A non-positive d leaves the deadline to the caller's context.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
