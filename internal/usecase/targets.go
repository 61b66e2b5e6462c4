package usecase

import (
	"net/url"
	"strings"
)

// Targets builds upstream page URLs from the configured templates.
type Targets struct {
	BaseURL    string
	Profile    string
	AlbumsPath string // contains {profile}
	PhotosPath string // contains {profile} and {album}
}

// AlbumsURL is the profile's album index page.
func (t Targets) AlbumsURL() string {
	return t.expand(t.AlbumsPath, "")
}

// PhotosURL is the best-effort page for one album.
func (t Targets) PhotosURL(albumID string) string {
	return t.expand(t.PhotosPath, albumID)
}

func (t Targets) expand(path, albumID string) string {
	r := strings.NewReplacer(
		"{profile}", url.PathEscape(t.Profile),
		"{album}", url.QueryEscape(albumID),
	)
	return strings.TrimSuffix(t.BaseURL, "/") + r.Replace(path)
}
