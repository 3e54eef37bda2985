package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"change_tracker/internal/domain"
)

// SourceStore is safe for concurrent use; every call takes its own pooled
// connection unless the context carries a transaction.
type SourceStore struct {
	db *sqlx.DB
}

func NewSourceStore(db *sqlx.DB) *SourceStore {
	return &SourceStore{db: db}
}

func (s *SourceStore) List(ctx context.Context) ([]domain.Source, error) {
	query := `
		SELECT id, url, enabled, failed_count, last_checked
		FROM sources
		ORDER BY id`

	var sources []domain.Source
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &sources, query); err != nil {
		return nil, wrap("list sources", err)
	}
	return sources, nil
}

func (s *SourceStore) RecordFailure(ctx context.Context, id int64, failedCount int, enabled bool) error {
	query := `UPDATE sources SET failed_count = $2, enabled = $3 WHERE id = $1`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id, failedCount, enabled); err != nil {
		return wrap("record source failure", err)
	}
	return nil
}

func (s *SourceStore) RecordSuccess(ctx context.Context, id int64, lastChecked time.Time) error {
	query := `UPDATE sources SET last_checked = $2, failed_count = 0 WHERE id = $1`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id, lastChecked); err != nil {
		return wrap("record source success", err)
	}
	return nil
}

func (s *SourceStore) Add(ctx context.Context, url string) (int64, error) {
	query := `INSERT INTO sources (url) VALUES ($1) RETURNING id`

	var id int64
	if err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query, url).Scan(&id); err != nil {
		return 0, wrap("add source", err)
	}
	return id, nil
}

// Enable turns a disabled source back on and clears its failure count.
func (s *SourceStore) Enable(ctx context.Context, id int64) error {
	query := `UPDATE sources SET enabled = TRUE, failed_count = 0 WHERE id = $1`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, id); err != nil {
		return wrap("enable source", err)
	}
	return nil
}

func (s *SourceStore) Delete(ctx context.Context, id int64) error {
	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, `DELETE FROM sources WHERE id = $1`, id); err != nil {
		return wrap("delete source", err)
	}
	return nil
}
