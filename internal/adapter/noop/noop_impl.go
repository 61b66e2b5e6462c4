// Package noop provides diagnostics repositories for deployments without
// PostgreSQL or Redis.
package noop

import (
	"context"

	"github.com/user/comic-reader/internal/entity"
)

// ScrapeFailureRepo discards every failure.
type ScrapeFailureRepo struct{}

func (ScrapeFailureRepo) Record(context.Context, *entity.ScrapeFailure) error { return nil }

func (ScrapeFailureRepo) Recent(context.Context, int) ([]*entity.ScrapeFailure, error) {
	return nil, nil
}

// FailureStreakRepo never counts.
type FailureStreakRepo struct{}

func (FailureStreakRepo) Increment(context.Context, string) (int64, error) { return 0, nil }
func (FailureStreakRepo) Reset(context.Context, string) error             { return nil }
func (FailureStreakRepo) Get(context.Context, string) (int64, error)      { return 0, nil }
