package usecase

import (
	"context"
	"net/url"
	"time"

	"github.com/user/comic-reader/internal/entity"
	"github.com/user/comic-reader/internal/extractor"
	"github.com/user/comic-reader/internal/repository"
	"github.com/user/comic-reader/pkg/metrics"
	"go.uber.org/zap"
)

// PhotoListing is what an album page resolved to. Placeholders carry either
// Message (nothing extracted) or Error (page could not be fetched).
type PhotoListing struct {
	Photos  []entity.Photo
	Message string
	Error   string
}

// PhotoFetcher defines the interface for loading one album's photos.
type PhotoFetcher interface {
	// FetchPhotos never fails; every failure degrades to placeholder photos.
	FetchPhotos(ctx context.Context, albumID string) *PhotoListing
}

type photoFetcherUseCase struct {
	fetcher    repository.PageFetcher
	strategies extractor.PhotoStrategy
	ids        extractor.IDGenerator
	targets    Targets
	diag       *diagnostics
	logger     *zap.Logger
}

// NewPhotoFetcher creates a new PhotoFetcher use case.
func NewPhotoFetcher(
	fetcher repository.PageFetcher,
	strategies extractor.PhotoStrategy,
	ids extractor.IDGenerator,
	targets Targets,
	failureRepo repository.ScrapeFailureRepository,
	streakRepo repository.FailureStreakRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) PhotoFetcher {
	return &photoFetcherUseCase{
		fetcher:    fetcher,
		strategies: strategies,
		ids:        ids,
		targets:    targets,
		diag:       &diagnostics{failures: failureRepo, streaks: streakRepo, metrics: m, logger: logger},
		logger:     logger,
	}
}

func (uc *photoFetcherUseCase) FetchPhotos(ctx context.Context, albumID string) *PhotoListing {
	pageURL := uc.targets.PhotosURL(albumID)
	started := time.Now()

	uc.logger.Info("fetching album photos", zap.String("album_id", albumID), zap.String("url", pageURL))

	body, err := uc.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		uc.diag.failed(ctx, entity.TargetPhotos, pageURL, started, err)
		return &PhotoListing{Photos: PlaceholderPhotos(), Error: photosErrorMessage}
	}

	photos := uc.extract(pageURL, body)
	if len(photos) == 0 {
		uc.diag.failed(ctx, entity.TargetPhotos, pageURL, started, nil)
		return &PhotoListing{Photos: PlaceholderPhotos(), Message: photosFallbackMessage}
	}

	uc.diag.succeeded(ctx, entity.TargetPhotos, started)
	uc.logger.Info("extracted photos", zap.String("album_id", albumID), zap.Int("count", len(photos)))
	return &PhotoListing{Photos: photos}
}

func (uc *photoFetcherUseCase) extract(pageURL string, body []byte) []entity.Photo {
	doc, err := extractor.ParseDocument(body)
	if err != nil {
		uc.logger.Warn("failed to parse album page", zap.Error(err))
		return nil
	}
	page, _ := url.Parse(pageURL)
	return uc.strategies.Photos(doc, page, uc.ids)
}
