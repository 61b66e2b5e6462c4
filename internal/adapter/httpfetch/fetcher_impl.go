package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/lestrrat-go/backoff/v2"
	"github.com/user/comic-reader/internal/proxy"
	"github.com/user/comic-reader/internal/repository"
	"go.uber.org/zap"
)

const (
	maxBodyBytes = 8 << 20
	jitterFactor = 0.2
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
)

// Options tune the upstream client.
type Options struct {
	Timeout        time.Duration
	Retries        int
	Backoff        time.Duration
	AcceptLanguage string
}

// Fetcher is a PageFetcher over plain net/http.
type Fetcher struct {
	client  *http.Client
	proxies *proxy.Manager
	opts    Options
	logger  *zap.Logger
}

var _ repository.PageFetcher = (*Fetcher)(nil)

// NewFetcher creates a fetcher whose transport routes through the proxy rotation.
func NewFetcher(opts Options, proxies *proxy.Manager, logger *zap.Logger) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxies.ProxyFunc()

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		proxies: proxies,
		opts:    opts,
		logger:  logger,
	}
}

// Fetch performs the GET, retrying transport errors, 429 and 5xx up to
// opts.Retries times with jittered exponential backoff.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	policy := backoff.Exponential(
		backoff.WithMinInterval(f.opts.Backoff),
		backoff.WithMaxInterval(4*f.opts.Backoff),
		backoff.WithJitterFactor(jitterFactor),
		backoff.WithMaxRetries(f.opts.Retries+1),
	)
	b := policy.Start(ctx)

	var lastErr error
	for attempt := 0; backoff.Continue(b); attempt++ {
		body, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt >= f.opts.Retries || !retryable(err) {
			return nil, err
		}
		f.logger.Warn("upstream fetch failed, retrying",
			zap.String("url", url), zap.Int("attempt", attempt+1), zap.Error(err))
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: %v", repository.ErrUpstreamUnreachable, ctx.Err())
	}
	return nil, lastErr
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.proxies.GetUserAgent())
	req.Header.Set("Accept", acceptHeader)
	if f.opts.AcceptLanguage != "" {
		req.Header.Set("Accept-Language", f.opts.AcceptLanguage)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	f.logger.Debug("upstream responded",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &repository.StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(err)
	}
	return body, nil
}

func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", repository.ErrFetchTimeout, err)
	}
	return fmt.Errorf("%w: %v", repository.ErrUpstreamUnreachable, err)
}

func retryable(err error) bool {
	var statusErr *repository.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return errors.Is(err, repository.ErrUpstreamUnreachable)
}
