package repository

import "context"

// PageFetcher retrieves the raw HTML of an upstream page.
type PageFetcher interface {
	// Fetch performs an anonymous GET of url and returns the response body.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
