package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/user/comic-reader/internal/entity"
	"github.com/user/comic-reader/internal/extractor"
	"github.com/user/comic-reader/internal/repository"
	"github.com/user/comic-reader/pkg/metrics"
	"go.uber.org/zap"
)

var ErrAlbumIndexUnavailable = errors.New("album index could not be fetched")

// AlbumListing is what the album index resolved to. Message is set when
// Albums holds placeholders.
type AlbumListing struct {
	Albums  []entity.Album
	Message string
}

// AlbumLister defines the interface for listing the profile's albums.
type AlbumLister interface {
	// ListAlbums fetches the album index. A fetch failure is returned as an
	// error wrapping ErrAlbumIndexUnavailable; an empty extraction is not an
	// error and yields placeholder albums.
	ListAlbums(ctx context.Context) (*AlbumListing, error)
}

type albumListerUseCase struct {
	fetcher    repository.PageFetcher
	strategies extractor.AlbumStrategy
	targets    Targets
	diag       *diagnostics
	logger     *zap.Logger
}

// NewAlbumLister creates a new AlbumLister use case.
func NewAlbumLister(
	fetcher repository.PageFetcher,
	strategies extractor.AlbumStrategy,
	targets Targets,
	failureRepo repository.ScrapeFailureRepository,
	streakRepo repository.FailureStreakRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) AlbumLister {
	return &albumListerUseCase{
		fetcher:    fetcher,
		strategies: strategies,
		targets:    targets,
		diag:       &diagnostics{failures: failureRepo, streaks: streakRepo, metrics: m, logger: logger},
		logger:     logger,
	}
}

func (uc *albumListerUseCase) ListAlbums(ctx context.Context) (*AlbumListing, error) {
	pageURL := uc.targets.AlbumsURL()
	started := time.Now()

	uc.logger.Info("fetching album index", zap.String("url", pageURL))

	body, err := uc.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		uc.diag.failed(ctx, entity.TargetAlbums, pageURL, started, err)
		return nil, fmt.Errorf("%w: %w", ErrAlbumIndexUnavailable, err)
	}

	albums := uc.extract(pageURL, body)
	if len(albums) == 0 {
		uc.diag.failed(ctx, entity.TargetAlbums, pageURL, started, nil)
		return &AlbumListing{Albums: PlaceholderAlbums(), Message: albumsFallbackMessage}, nil
	}

	uc.diag.succeeded(ctx, entity.TargetAlbums, started)
	uc.logger.Info("extracted albums", zap.Int("count", len(albums)))
	return &AlbumListing{Albums: albums}, nil
}

func (uc *albumListerUseCase) extract(pageURL string, body []byte) []entity.Album {
	doc, err := extractor.ParseDocument(body)
	if err != nil {
		uc.logger.Warn("failed to parse album index", zap.Error(err))
		return nil
	}
	page, _ := url.Parse(pageURL)
	return uc.strategies.Albums(doc, page)
}
