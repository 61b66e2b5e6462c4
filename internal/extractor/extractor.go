// Package extractor maps parsed upstream pages to album and photo records.
//
// Every strategy here leans on incidental markup of a page this service does
// not control. Matching too few or too many elements is an expected outcome,
// not a bug, and callers fall back to placeholder data when nothing matches.
package extractor

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/comic-reader/internal/entity"
	"github.com/user/comic-reader/pkg/utils"
)

// AlbumStrategy locates album entries in an album index page.
type AlbumStrategy interface {
	Albums(doc *goquery.Document, page *url.URL) []entity.Album
}

// PhotoStrategy locates photos in an album page.
type PhotoStrategy interface {
	Photos(doc *goquery.Document, page *url.URL, ids IDGenerator) []entity.Photo
}

// ParseDocument parses raw HTML into a queryable document.
func ParseDocument(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// AlbumChain tries each strategy in order and returns the first non-empty result.
type AlbumChain []AlbumStrategy

func (c AlbumChain) Albums(doc *goquery.Document, page *url.URL) []entity.Album {
	for _, s := range c {
		if albums := s.Albums(doc, page); len(albums) > 0 {
			return albums
		}
	}
	return nil
}

// PhotoChain tries each strategy in order and returns the first non-empty result.
type PhotoChain []PhotoStrategy

func (c PhotoChain) Photos(doc *goquery.Document, page *url.URL, ids IDGenerator) []entity.Photo {
	for _, s := range c {
		if photos := s.Photos(doc, page, ids); len(photos) > 0 {
			return photos
		}
	}
	return nil
}

// DefaultAlbumStrategies returns the album heuristics in order of preference.
func DefaultAlbumStrategies() AlbumChain {
	return AlbumChain{AnchorAlbumStrategy{}, DataAttrAlbumStrategy{}}
}

// cleanText collapses runs of whitespace the way a browser renders them.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// resolve turns ref into an absolute URL against page, returning ref
// unchanged when it cannot be resolved.
func resolve(page *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if page == nil || ref == "" {
		return ref
	}
	abs, err := utils.ToAbsoluteURL(page, ref)
	if err != nil {
		return ref
	}
	return abs
}
