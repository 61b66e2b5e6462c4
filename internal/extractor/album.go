package extractor

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/user/comic-reader/internal/entity"
	"github.com/user/comic-reader/pkg/utils"
)

const untitledAlbum = "Untitled Album"

// AnchorAlbumStrategy reads album links of the form /photos/a.<digits>.
// The album id is every digit of the href; anchors without text, href or
// digits are skipped.
type AnchorAlbumStrategy struct{}

func (AnchorAlbumStrategy) Albums(doc *goquery.Document, page *url.URL) []entity.Album {
	var albums []entity.Album

	doc.Find(`a[href*="/photos/a."]`).Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		name := cleanText(s.Text())
		if href == "" || name == "" {
			return
		}
		id := utils.DigitsOnly(href)
		if id == "" {
			return
		}

		album := entity.Album{
			ID:   id,
			Name: name,
			URL:  resolve(page, href),
		}
		if src, ok := s.Find("img").First().Attr("src"); ok && src != "" {
			album.Cover = resolve(page, src)
		}
		albums = append(albums, album)
	})

	return albums
}

// DataAttrAlbumStrategy reads containers carrying a data-album-id attribute.
type DataAttrAlbumStrategy struct{}

func (DataAttrAlbumStrategy) Albums(doc *goquery.Document, page *url.URL) []entity.Album {
	var albums []entity.Album

	doc.Find("[data-album-id]").Each(func(i int, s *goquery.Selection) {
		id, _ := s.Attr("data-album-id")
		if id == "" {
			return
		}

		name := cleanText(s.Find("span").First().Text())
		if name == "" {
			name = untitledAlbum
		}

		album := entity.Album{ID: id, Name: name}
		if src, ok := s.Find("img").First().Attr("src"); ok && src != "" {
			album.Cover = resolve(page, src)
		}
		albums = append(albums, album)
	})

	return albums
}
