package viewer

import (
	"context"
	"sync"

	"github.com/user/comic-reader/internal/usecase"
	"go.uber.org/zap"
)

// PhotoSource loads the photos of one album. usecase.PhotoFetcher satisfies it.
type PhotoSource interface {
	FetchPhotos(ctx context.Context, albumID string) *usecase.PhotoListing
}

// Session is a State shared between concurrent callers. Album fetches run
// without holding the lock; a fetch that finishes after a newer selection
// is dropped.
type Session struct {
	mu     sync.Mutex
	state  State
	source PhotoSource
	logger *zap.Logger
}

func NewSession(source PhotoSource, logger *zap.Logger) *Session {
	return &Session{source: source, logger: logger}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Select opens albumID and loads its photos. It reports whether the loaded
// photos were applied.
func (s *Session) Select(ctx context.Context, albumID string) bool {
	s.mu.Lock()
	var ticket Ticket
	s.state, ticket = s.state.SelectAlbum(albumID)
	s.mu.Unlock()

	listing := s.source.FetchPhotos(ctx, albumID)

	s.mu.Lock()
	defer s.mu.Unlock()

	notice := listing.Message
	if listing.Error != "" {
		notice = listing.Error
	}
	next, applied := s.state.ReceivePhotos(ticket, listing.Photos, notice)
	if !applied {
		s.logger.Debug("discarding stale album photos",
			zap.String("album_id", albumID),
			zap.String("selected", s.state.SelectedAlbum),
		)
		return false
	}
	if listing.Error != "" {
		next = next.SetError(listing.Error)
	}
	s.state = next
	return true
}

func (s *Session) SetAlbums(listing *usecase.AlbumListing) {
	s.update(func(st State) State { return st.SetAlbums(listing.Albums) })
}

func (s *Session) Next() State     { return s.update(State.Next) }
func (s *Session) Previous() State { return s.update(State.Previous) }

func (s *Session) GoTo(i int) State {
	return s.update(func(st State) State { return st.GoTo(i) })
}

func (s *Session) update(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}
