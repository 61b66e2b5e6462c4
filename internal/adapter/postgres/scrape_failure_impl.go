package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/comic-reader/internal/entity"
)

const schema = `
	CREATE TABLE IF NOT EXISTS scrape_failures (
		id               BIGSERIAL PRIMARY KEY,
		target           TEXT        NOT NULL,
		url              TEXT        NOT NULL,
		kind             TEXT        NOT NULL,
		reason           TEXT        NOT NULL DEFAULT '',
		http_status_code INTEGER     NOT NULL DEFAULT 0,
		occurred_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS scrape_failures_occurred_at_idx ON scrape_failures (occurred_at DESC);
`

// ScrapeFailureRepoImpl provides a concrete implementation for the ScrapeFailureRepository interface using PostgreSQL.
type ScrapeFailureRepoImpl struct {
	db *pgxpool.Pool
}

// NewScrapeFailureRepo creates a new instance of ScrapeFailureRepoImpl.
func NewScrapeFailureRepo(db *pgxpool.Pool) *ScrapeFailureRepoImpl {
	return &ScrapeFailureRepoImpl{db: db}
}

// EnsureSchema creates the ledger table if it does not exist yet.
func (r *ScrapeFailureRepoImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

// Record appends a failure to the ledger.
func (r *ScrapeFailureRepoImpl) Record(ctx context.Context, f *entity.ScrapeFailure) error {
	query := `
		INSERT INTO scrape_failures (target, url, kind, reason, http_status_code, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	return r.db.QueryRow(ctx, query,
		f.Target,
		f.URL,
		string(f.Kind),
		f.Reason,
		f.HTTPStatusCode,
		f.OccurredAt,
	).Scan(&f.ID)
}

// Recent retrieves the newest failures first.
func (r *ScrapeFailureRepoImpl) Recent(ctx context.Context, limit int) ([]*entity.ScrapeFailure, error) {
	query := `
		SELECT id, target, url, kind, reason, http_status_code, occurred_at
		FROM scrape_failures
		ORDER BY occurred_at DESC, id DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var failures []*entity.ScrapeFailure
	for rows.Next() {
		var f entity.ScrapeFailure
		var kind string
		if err := rows.Scan(
			&f.ID,
			&f.Target,
			&f.URL,
			&kind,
			&f.Reason,
			&f.HTTPStatusCode,
			&f.OccurredAt,
		); err != nil {
			return nil, err
		}
		f.Kind = entity.FailureKind(kind)
		failures = append(failures, &f)
	}

	return failures, rows.Err()
}
