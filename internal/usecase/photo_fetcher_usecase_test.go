package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/comic-reader/internal/entity"
	"github.com/user/comic-reader/internal/extractor"
	"github.com/user/comic-reader/internal/repository"
	"go.uber.org/zap/zaptest"
)

type fetcherFixture struct {
	fetcher  *fakeFetcher
	failures *memFailureRepo
	streaks  *memStreakRepo
	photos   PhotoFetcher
}

func newFetcherFixture(t *testing.T, fetcher *fakeFetcher) *fetcherFixture {
	f := &fetcherFixture{
		fetcher:  fetcher,
		failures: &memFailureRepo{},
		streaks:  newMemStreakRepo(),
	}
	f.photos = NewPhotoFetcher(
		fetcher,
		extractor.PhotoChain{extractor.CDNPhotoStrategy{Pattern: "fbcdn", Exclude: []string{"profile", "icon"}}},
		extractor.RandomIDs{},
		testTargets,
		f.failures,
		f.streaks,
		newTestMetrics(t),
		zaptest.NewLogger(t),
	)
	return f
}

func TestFetchPhotos_SkipsProfileIcon(t *testing.T) {
	fx := newFetcherFixture(t, &fakeFetcher{body: []byte(`<html><body>
<img src="https://xyz.fbcdn/photo1.jpg" alt="Birthday">
<img src="https://xyz.fbcdn/profile_icon.png">
</body></html>`)})

	listing := fx.photos.FetchPhotos(context.Background(), "42")

	require.Len(t, listing.Photos, 1)
	assert.True(t, strings.HasSuffix(listing.Photos[0].Src, "photo1.jpg"))
	assert.Equal(t, "Birthday", listing.Photos[0].Caption)
	assert.Empty(t, listing.Message)
	assert.Empty(t, listing.Error)
	assert.Equal(t,
		[]string{"https://www.facebook.com/terrastationvn/photos/?tab=album&album_id=42"},
		fx.fetcher.urls,
	)
}

func TestFetchPhotos_NoMatchesServesPlaceholders(t *testing.T) {
	fx := newFetcherFixture(t, &fakeFetcher{body: []byte(`<html><body><img src="/logo.png"></body></html>`)})

	listing := fx.photos.FetchPhotos(context.Background(), "42")

	assertPlaceholderPhotos(t, listing.Photos)
	assert.NotEmpty(t, listing.Message)
	assert.Empty(t, listing.Error)
	require.Len(t, fx.failures.failures, 1)
	assert.Equal(t, entity.FailureExtractionEmpty, fx.failures.failures[0].Kind)
}

func TestFetchPhotos_FetchFailureServesPlaceholders(t *testing.T) {
	fx := newFetcherFixture(t, &fakeFetcher{err: fmt.Errorf("%w: deadline", repository.ErrFetchTimeout)})

	listing := fx.photos.FetchPhotos(context.Background(), "42")

	assertPlaceholderPhotos(t, listing.Photos)
	assert.NotEmpty(t, listing.Error)
	require.Len(t, fx.failures.failures, 1)
	assert.Equal(t, entity.FailureTimeout, fx.failures.failures[0].Kind)
	assert.Equal(t, int64(1), fx.streaks.streaks[entity.TargetPhotos])
}

func TestFetchPhotos_EscapesAlbumID(t *testing.T) {
	fx := newFetcherFixture(t, &fakeFetcher{body: []byte(`<html></html>`)})

	fx.photos.FetchPhotos(context.Background(), "7&tab=other")

	require.Len(t, fx.fetcher.urls, 1)
	assert.Equal(t,
		"https://www.facebook.com/terrastationvn/photos/?tab=album&album_id=7%26tab%3Dother",
		fx.fetcher.urls[0],
	)
}

func assertPlaceholderPhotos(t *testing.T, photos []entity.Photo) {
	t.Helper()
	require.Len(t, photos, 3)
	srcs := map[string]bool{}
	for i, p := range photos {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Src)
		assert.Equal(t, fmt.Sprintf("Sample Photo %d", i+1), p.Caption)
		srcs[p.Src] = true
	}
	assert.Len(t, srcs, 3)
}
