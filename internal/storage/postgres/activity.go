package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"change_tracker/internal/domain"
)

type ActivityStore struct {
	db *sqlx.DB
}

func NewActivityStore(db *sqlx.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) Insert(ctx context.Context, sourceID int64, postURL string, timestamp time.Time) (int64, error) {
	query := `
		INSERT INTO activities (source_id, post_url, timestamp)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query, sourceID, postURL, timestamp).Scan(&id)
	if err != nil {
		return 0, wrap("insert activity", err)
	}
	return id, nil
}

// List returns activities newest first.
func (s *ActivityStore) List(ctx context.Context, limit, offset int) ([]domain.Activity, error) {
	query := `
		SELECT a.id, a.source_id, s.url AS source_url, a.post_url, a.timestamp
		FROM activities a
		INNER JOIN sources s ON s.id = a.source_id
		ORDER BY a.id DESC
		LIMIT $1 OFFSET $2`

	var activities []domain.Activity
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &activities, query, limit, offset); err != nil {
		return nil, wrap("list activities", err)
	}
	return activities, nil
}
