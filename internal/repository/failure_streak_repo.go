package repository

import "context"

// FailureStreakRepository counts consecutive failed scrapes per target.
type FailureStreakRepository interface {
	// Increment bumps the streak for target and returns the new value.
	Increment(ctx context.Context, target string) (int64, error)
	// Reset clears the streak after a successful extraction.
	Reset(ctx context.Context, target string) error
	// Get returns the current streak, zero when none is recorded.
	Get(ctx context.Context, target string) (int64, error)
}
