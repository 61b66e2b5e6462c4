// Package viewer holds the reader's navigation state: which album is open,
// its photos, and the photo currently shown.
//
// State transitions are pure: every method returns a new State and leaves
// the receiver untouched. Session adds locking and the album fetch on top.
package viewer

import "github.com/user/comic-reader/internal/entity"

// MaxThumbnails caps the thumbnail strip.
const MaxThumbnails = 10

// Ticket identifies one album selection. Photos delivered with an older
// ticket than the latest selection are discarded.
type Ticket uint64

type State struct {
	Albums        []entity.Album
	SelectedAlbum string
	Photos        []entity.Photo
	Index         int
	Loading       bool
	Error         string
	// Notice explains why placeholder photos are shown.
	Notice string

	generation Ticket
}

func (s State) SetAlbums(albums []entity.Album) State {
	s.Albums = append([]entity.Album(nil), albums...)
	return s
}

// SelectAlbum opens albumID, rewinds to the first photo and marks the state
// as loading until ReceivePhotos is called with the returned ticket.
func (s State) SelectAlbum(albumID string) (State, Ticket) {
	s.generation++
	s.SelectedAlbum = albumID
	s.Photos = nil
	s.Index = 0
	s.Loading = true
	s.Error = ""
	s.Notice = ""
	return s, s.generation
}

// ReceivePhotos applies the result of the fetch started by SelectAlbum.
// It reports false and returns s unchanged when t is stale.
func (s State) ReceivePhotos(t Ticket, photos []entity.Photo, notice string) (State, bool) {
	if t != s.generation {
		return s, false
	}
	s.Photos = append([]entity.Photo(nil), photos...)
	s.Index = 0
	s.Loading = false
	s.Notice = notice
	return s, true
}

func (s State) Next() State {
	if s.Index < len(s.Photos)-1 {
		s.Index++
	}
	return s
}

func (s State) Previous() State {
	if s.Index > 0 {
		s.Index--
	}
	return s
}

// GoTo jumps to photo i. Out of range indexes leave the state unchanged.
func (s State) GoTo(i int) State {
	if i >= 0 && i < len(s.Photos) {
		s.Index = i
	}
	return s
}

func (s State) SetLoading(loading bool) State {
	s.Loading = loading
	return s
}

func (s State) SetError(msg string) State {
	s.Error = msg
	s.Loading = false
	return s
}

// Current returns the photo being shown, if any.
func (s State) Current() (entity.Photo, bool) {
	if s.Index < 0 || s.Index >= len(s.Photos) {
		return entity.Photo{}, false
	}
	return s.Photos[s.Index], true
}

// Thumbnails returns the leading photos shown in the thumbnail strip.
func (s State) Thumbnails() []entity.Photo {
	n := min(len(s.Photos), MaxThumbnails)
	return s.Photos[:n:n]
}
