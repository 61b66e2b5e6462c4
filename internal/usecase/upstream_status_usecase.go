package usecase

import (
	"context"
	"fmt"

	"github.com/user/comic-reader/internal/entity"
	"github.com/user/comic-reader/internal/repository"
)

// UpstreamStatus summarizes how scraping has been going recently.
type UpstreamStatus struct {
	Streaks        map[string]int64
	RecentFailures []*entity.ScrapeFailure
}

// StatusReporter defines the interface for reading scrape diagnostics.
type StatusReporter interface {
	Status(ctx context.Context, limit int) (*UpstreamStatus, error)
}

type statusReporterUseCase struct {
	failureRepo repository.ScrapeFailureRepository
	streakRepo  repository.FailureStreakRepository
}

// NewStatusReporter creates a new StatusReporter use case.
func NewStatusReporter(
	failureRepo repository.ScrapeFailureRepository,
	streakRepo repository.FailureStreakRepository,
) StatusReporter {
	return &statusReporterUseCase{failureRepo: failureRepo, streakRepo: streakRepo}
}

func (uc *statusReporterUseCase) Status(ctx context.Context, limit int) (*UpstreamStatus, error) {
	status := &UpstreamStatus{Streaks: make(map[string]int64, 2)}

	for _, target := range []string{entity.TargetAlbums, entity.TargetPhotos} {
		n, err := uc.streakRepo.Get(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("failed to read failure streak for %s: %w", target, err)
		}
		status.Streaks[target] = n
	}

	failures, err := uc.failureRepo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent failures: %w", err)
	}
	status.RecentFailures = failures

	return status, nil
}
