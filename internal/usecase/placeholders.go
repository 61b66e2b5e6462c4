package usecase

import (
	"fmt"

	"github.com/user/comic-reader/internal/entity"
)

const (
	albumsFallbackMessage = "Could not fetch real albums. The profile page may be blocking scraping or its layout has changed."
	photosFallbackMessage = "Could not find photos on the album page. The page may require authentication or its layout has changed."
	photosErrorMessage    = "Could not fetch the album page. The upstream site may require authentication or be blocking anonymous access."

	placeholderPhotoURL = "https://via.placeholder.com/600x800?text=Photo+%d"
)

// PlaceholderAlbums is served when no album could be extracted.
func PlaceholderAlbums() []entity.Album {
	albums := make([]entity.Album, 0, 2)
	for i := 1; i <= 2; i++ {
		count := 0
		albums = append(albums, entity.Album{
			ID:         fmt.Sprintf("sample%d", i),
			Name:       fmt.Sprintf("Sample Album %d", i),
			PhotoCount: &count,
		})
	}
	return albums
}

// PlaceholderPhotos is served when no photo could be extracted or fetched.
func PlaceholderPhotos() []entity.Photo {
	photos := make([]entity.Photo, 0, 3)
	for i := 1; i <= 3; i++ {
		photos = append(photos, entity.Photo{
			ID:      fmt.Sprintf("%d", i),
			Src:     fmt.Sprintf(placeholderPhotoURL, i),
			Caption: fmt.Sprintf("Sample Photo %d", i),
		})
	}
	return photos
}
