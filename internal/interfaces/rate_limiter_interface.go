package interfaces

import (
	"context"
	"time"
)

// RateLimiter reports whether key may proceed and, if not, how long to wait.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}
