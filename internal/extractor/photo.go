package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/comic-reader/internal/entity"
)

// CDNPhotoStrategy keeps images served from the content delivery network,
// dropping UI chrome such as profile pictures and icons.
type CDNPhotoStrategy struct {
	// Pattern must appear in the image source, e.g. "fbcdn".
	Pattern string
	// Exclude lists source substrings that mark non-content images.
	Exclude []string
}

func (c CDNPhotoStrategy) Photos(doc *goquery.Document, page *url.URL, ids IDGenerator) []entity.Photo {
	var photos []entity.Photo

	doc.Find("img[src]").Each(func(i int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" || !strings.Contains(src, c.Pattern) || c.excluded(src) {
			return
		}

		src = resolve(page, src)
		photo := entity.Photo{
			ID:  ids.NewID(src),
			Src: src,
		}
		if alt, ok := s.Attr("alt"); ok {
			photo.Caption = strings.TrimSpace(alt)
		}
		photos = append(photos, photo)
	})

	return photos
}

func (c CDNPhotoStrategy) excluded(src string) bool {
	for _, marker := range c.Exclude {
		if marker != "" && strings.Contains(src, marker) {
			return true
		}
	}
	return false
}
