package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/user/comic-reader/internal/entity"
	"github.com/user/comic-reader/internal/repository"
	"github.com/user/comic-reader/pkg/metrics"
	"go.uber.org/zap"
)

// Fetch outcomes as reported to metrics.
const (
	outcomeSuccess  = "success"
	outcomeFallback = "fallback"
	outcomeError    = "error"
)

// diagnostics records how each scrape ended. Nothing here changes what the
// caller is served; storage errors are logged and dropped.
type diagnostics struct {
	failures repository.ScrapeFailureRepository
	streaks  repository.FailureStreakRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func (d *diagnostics) succeeded(ctx context.Context, target string, started time.Time) {
	d.metrics.ObserveFetch(target, outcomeSuccess, time.Since(started).Seconds())
	if err := d.streaks.Reset(ctx, target); err != nil {
		d.logger.Warn("failed to reset failure streak", zap.String("target", target), zap.Error(err))
	}
}

// failed records a fetch error (fetchErr != nil) or an empty extraction.
func (d *diagnostics) failed(ctx context.Context, target, url string, started time.Time, fetchErr error) {
	kind, code := classifyFailure(fetchErr)

	outcome := outcomeFallback
	if fetchErr != nil {
		outcome = outcomeError
	}
	d.metrics.ObserveFetch(target, outcome, time.Since(started).Seconds())
	d.metrics.IncFallback(target, string(kind))

	streak, err := d.streaks.Increment(ctx, target)
	if err != nil {
		d.logger.Warn("failed to increment failure streak", zap.String("target", target), zap.Error(err))
	}

	failure := &entity.ScrapeFailure{
		Target:         target,
		URL:            url,
		Kind:           kind,
		HTTPStatusCode: code,
		OccurredAt:     time.Now().UTC(),
	}
	if fetchErr != nil {
		failure.Reason = fetchErr.Error()
	}
	if err := d.failures.Record(ctx, failure); err != nil {
		d.logger.Warn("failed to record scrape failure", zap.String("target", target), zap.Error(err))
	}

	d.logger.Warn("scrape fell back to placeholder data",
		zap.String("target", target),
		zap.String("url", url),
		zap.String("kind", string(kind)),
		zap.Int64("streak", streak),
		zap.NamedError("cause", fetchErr),
	)
}

func classifyFailure(err error) (entity.FailureKind, int) {
	if err == nil {
		return entity.FailureExtractionEmpty, 0
	}
	var statusErr *repository.StatusError
	switch {
	case errors.As(err, &statusErr):
		return entity.FailureHTTPStatus, statusErr.Code
	case errors.Is(err, repository.ErrFetchTimeout):
		return entity.FailureTimeout, 0
	default:
		return entity.FailureTransport, 0
	}
}
