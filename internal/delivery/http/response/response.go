package response

import (
	"time"

	"github.com/user/comic-reader/internal/entity"
)

type AlbumResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Cover      string `json:"cover,omitempty"`
	PhotoCount *int   `json:"photoCount,omitempty"`
	URL        string `json:"url,omitempty"`
}

// AlbumsResponse always carries an albums array, empty on error.
type AlbumsResponse struct {
	Albums  []AlbumResponse `json:"albums"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type PhotoResponse struct {
	ID        string `json:"id"`
	Src       string `json:"src"`
	Caption   string `json:"caption,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// PhotosResponse always carries a photos array, empty on error.
type PhotosResponse struct {
	Photos  []PhotoResponse `json:"photos"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type ScrapeFailureResponse struct {
	Target         string    `json:"target"`
	URL            string    `json:"url"`
	Kind           string    `json:"kind"`
	Reason         string    `json:"reason,omitempty"`
	HTTPStatusCode int       `json:"httpStatusCode,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type UpstreamStatusResponse struct {
	Streaks        map[string]int64        `json:"streaks"`
	RecentFailures []ScrapeFailureResponse `json:"recentFailures"`
}

func NewAlbums(albums []entity.Album) []AlbumResponse {
	out := make([]AlbumResponse, 0, len(albums))
	for _, a := range albums {
		out = append(out, AlbumResponse{
			ID:         a.ID,
			Name:       a.Name,
			Cover:      a.Cover,
			PhotoCount: a.PhotoCount,
			URL:        a.URL,
		})
	}
	return out
}

func NewPhotos(photos []entity.Photo) []PhotoResponse {
	out := make([]PhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, PhotoResponse{
			ID:        p.ID,
			Src:       p.Src,
			Caption:   p.Caption,
			Timestamp: p.Timestamp,
		})
	}
	return out
}

func NewScrapeFailures(failures []*entity.ScrapeFailure) []ScrapeFailureResponse {
	out := make([]ScrapeFailureResponse, 0, len(failures))
	for _, f := range failures {
		out = append(out, ScrapeFailureResponse{
			Target:         f.Target,
			URL:            f.URL,
			Kind:           string(f.Kind),
			Reason:         f.Reason,
			HTTPStatusCode: f.HTTPStatusCode,
			OccurredAt:     f.OccurredAt,
		})
	}
	return out
}
