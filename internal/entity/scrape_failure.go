package entity

import "time"

// Scrape targets.
const (
	TargetAlbums = "albums"
	TargetPhotos = "photos"
)

// FailureKind distinguishes why a response fell back to placeholder data.
type FailureKind string

const (
	FailureTimeout         FailureKind = "timeout"
	FailureTransport       FailureKind = "transport"
	FailureHTTPStatus      FailureKind = "http_status"
	FailureExtractionEmpty FailureKind = "extraction_empty"
)

// ScrapeFailure mirrors the `scrape_failures` PostgreSQL table schema.
type ScrapeFailure struct {
	ID             int64
	Target         string
	URL            string
	Kind           FailureKind
	Reason         string
	HTTPStatusCode int
	OccurredAt     time.Time
}
