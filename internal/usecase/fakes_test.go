package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/user/comic-reader/internal/entity"
	"github.com/user/comic-reader/pkg/metrics"
)

var testTargets = Targets{
	BaseURL:    "https://www.facebook.com",
	Profile:    "terrastationvn",
	AlbumsPath: "/{profile}/photos_albums",
	PhotosPath: "/{profile}/photos/?tab=album&album_id={album}",
}

// fakeFetcher returns a canned body or error and remembers the URLs it saw.
type fakeFetcher struct {
	body []byte
	err  error
	urls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.urls = append(f.urls, url)
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

type memFailureRepo struct {
	mu       sync.Mutex
	failures []*entity.ScrapeFailure
}

func (r *memFailureRepo) Record(_ context.Context, f *entity.ScrapeFailure) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
	return nil
}

func (r *memFailureRepo) Recent(_ context.Context, limit int) ([]*entity.ScrapeFailure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ScrapeFailure
	for i := len(r.failures) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.failures[i])
	}
	return out, nil
}

type memStreakRepo struct {
	mu      sync.Mutex
	streaks map[string]int64
}

func newMemStreakRepo() *memStreakRepo {
	return &memStreakRepo{streaks: map[string]int64{}}
}

func (r *memStreakRepo) Increment(_ context.Context, target string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.streaks[target]++
	return r.streaks[target], nil
}

func (r *memStreakRepo) Reset(_ context.Context, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.streaks, target)
	return nil
}

func (r *memStreakRepo) Get(_ context.Context, target string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.streaks[target], nil
}

func newTestMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()
	return metrics.New(prometheus.NewRegistry())
}
