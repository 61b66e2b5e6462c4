package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/user/comic-reader/internal/delivery/http/response"
	"github.com/user/comic-reader/internal/usecase"
	"go.uber.org/zap"
)

const (
	defaultFailureLimit = 20
	maxFailureLimit     = 100
	albumIDRules        = "required,max=128"
)

type Handler struct {
	albums   usecase.AlbumLister
	photos   usecase.PhotoFetcher
	status   usecase.StatusReporter
	validate *validator.Validate
	logger   *zap.Logger
}

func NewHandler(
	albums usecase.AlbumLister,
	photos usecase.PhotoFetcher,
	status usecase.StatusReporter,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		albums:   albums,
		photos:   photos,
		status:   status,
		validate: validator.New(),
		logger:   logger,
	}
}

func (h *Handler) HandleListAlbums(w http.ResponseWriter, r *http.Request) {
	listing, err := h.albums.ListAlbums(r.Context())
	if err != nil {
		h.logger.Error("Failed to list albums", zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, response.AlbumsResponse{
			Albums: []response.AlbumResponse{},
			Error:  "Failed to fetch albums",
		})
		return
	}

	h.writeJSON(w, http.StatusOK, response.AlbumsResponse{
		Albums:  response.NewAlbums(listing.Albums),
		Message: listing.Message,
	})
}

func (h *Handler) HandleGetAlbumPhotos(w http.ResponseWriter, r *http.Request) {
	albumID := chi.URLParam(r, "id")
	if err := h.validate.Var(albumID, albumIDRules); err != nil {
		h.writeJSON(w, http.StatusBadRequest, response.PhotosResponse{
			Photos: []response.PhotoResponse{},
			Error:  "Invalid album id",
		})
		return
	}

	listing := h.photos.FetchPhotos(r.Context(), albumID)
	h.writeJSON(w, http.StatusOK, response.PhotosResponse{
		Photos:  response.NewPhotos(listing.Photos),
		Message: listing.Message,
		Error:   listing.Error,
	})
}

// HandleUpstreamStatus reports failure streaks and the most recent scrape
// failures. ?limit= caps the failure list.
func (h *Handler) HandleUpstreamStatus(w http.ResponseWriter, r *http.Request) {
	limit := defaultFailureLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxFailureLimit {
			h.writeJSONError(w, "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = n
	}

	status, err := h.status.Status(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to read upstream status", zap.Error(err))
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, response.UpstreamStatusResponse{
		Streaks:        status.Streaks,
		RecentFailures: response.NewScrapeFailures(status.RecentFailures),
	})
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to write JSON response", zap.Error(err))
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
