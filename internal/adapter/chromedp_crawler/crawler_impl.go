package chromedp_crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/user/comic-reader/internal/proxy"
	"github.com/user/comic-reader/internal/repository"
	"go.uber.org/zap"
)

// ChromedpFetcher renders pages in headless Chrome before handing back the
// HTML, for upstream pages that build their markup with JavaScript.
type ChromedpFetcher struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	timeout     time.Duration
	logger      *zap.Logger
}

var _ repository.PageFetcher = (*ChromedpFetcher)(nil)

// NewChromedpFetcher starts a browser allocator shared by all fetches.
func NewChromedpFetcher(pageLoadTimeout time.Duration, proxies *proxy.Manager, logger *zap.Logger) *ChromedpFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(proxies.GetUserAgent()),
	)
	if p := proxies.GetProxy(); p != nil {
		opts = append(opts, chromedp.ProxyServer(p.String()))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &ChromedpFetcher{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		timeout:     pageLoadTimeout,
		logger:      logger,
	}
}

// Fetch navigates to url and returns the rendered document.
func (c *ChromedpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	taskCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, c.timeout)
	defer cancelTimeout()

	// Tie the browser tab to the caller so a disconnected client stops the render.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var html string
	start := time.Now()
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		c.logger.Warn("browser fetch failed", zap.String("url", url), zap.Error(err))
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", repository.ErrFetchTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrUpstreamUnreachable, err)
	}

	c.logger.Debug("browser fetch completed",
		zap.String("url", url), zap.Duration("duration", time.Since(start)))
	return []byte(html), nil
}

// Close shuts the browser down.
func (c *ChromedpFetcher) Close() {
	c.allocCancel()
}
