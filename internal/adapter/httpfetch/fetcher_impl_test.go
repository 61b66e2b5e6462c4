package httpfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/comic-reader/internal/proxy"
	"github.com/user/comic-reader/internal/repository"
	"go.uber.org/zap/zaptest"
)

const testAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

func newTestFetcher(t *testing.T, opts Options) *Fetcher {
	t.Helper()
	pm, err := proxy.NewManager(nil, []string{testAgent})
	require.NoError(t, err)
	if opts.Timeout == 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.Backoff == 0 {
		opts.Backoff = 5 * time.Millisecond
	}
	return NewFetcher(opts, pm, zaptest.NewLogger(t))
}

func TestFetch_SendsBrowserHeaders(t *testing.T) {
	var gotAgent, gotLang string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, Options{AcceptLanguage: "en-US,en;q=0.9"})
	body, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", string(body))
	assert.Equal(t, testAgent, gotAgent)
	assert.Equal(t, "en-US,en;q=0.9", gotLang)
}

func TestFetch_RetriesServerErrorOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("second time lucky"))
	}))
	defer srv.Close()

	f := newTestFetcher(t, Options{Retries: 1})
	body, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "second time lucky", string(body))
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetch_RetryIsBounded(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := newTestFetcher(t, Options{Retries: 1})
	_, err := f.Fetch(context.Background(), srv.URL)

	var statusErr *repository.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetch_NoRetryWhenDisabled(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := newTestFetcher(t, Options{Retries: 0})
	_, err := f.Fetch(context.Background(), srv.URL)

	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetch_ClientErrorNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := newTestFetcher(t, Options{Retries: 1})
	_, err := f.Fetch(context.Background(), srv.URL)

	var statusErr *repository.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	f := newTestFetcher(t, Options{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, repository.ErrFetchTimeout)
}

func TestFetch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	f := newTestFetcher(t, Options{Retries: 1})
	_, err := f.Fetch(context.Background(), url)

	assert.ErrorIs(t, err, repository.ErrUpstreamUnreachable)
}
