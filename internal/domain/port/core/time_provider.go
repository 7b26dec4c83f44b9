package core

import (
	"context"
	"time"
)

// TimeProvider abstracts time operations for the domain. Grant eligibility
// depends on the current UTC calendar month, so the clock must be injectable.
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
	WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc)
}
