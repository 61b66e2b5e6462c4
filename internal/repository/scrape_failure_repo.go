package repository

import (
	"context"

	"github.com/user/comic-reader/internal/entity"
)

// ScrapeFailureRepository keeps a ledger of upstream fetches that ended in placeholder data.
type ScrapeFailureRepository interface {
	// Record appends a failure to the ledger.
	Record(ctx context.Context, failure *entity.ScrapeFailure) error
	// Recent returns the newest failures first, at most limit of them.
	Recent(ctx context.Context, limit int) ([]*entity.ScrapeFailure, error)
}
