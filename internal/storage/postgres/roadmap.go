package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"change_tracker/internal/domain"
)

type RoadmapStore struct {
	db *sqlx.DB
}

func NewRoadmapStore(db *sqlx.DB) *RoadmapStore {
	return &RoadmapStore{db: db}
}

func (s *RoadmapStore) ListWatchedTabs(ctx context.Context) ([]string, error) {
	var tabs []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &tabs,
		`SELECT tab_external_id FROM roadmap_watched_tabs ORDER BY id`)
	if err != nil {
		return nil, wrap("list watched tabs", err)
	}
	return tabs, nil
}

func (s *RoadmapStore) AddWatchedTab(ctx context.Context, tabID string) error {
	query := `
		INSERT INTO roadmap_watched_tabs (tab_external_id)
		VALUES ($1)
		ON CONFLICT (tab_external_id) DO NOTHING`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, tabID); err != nil {
		return wrap("add watched tab", err)
	}
	return nil
}

func (s *RoadmapStore) RemoveWatchedTabs(ctx context.Context, tabIDs []string) error {
	query := `DELETE FROM roadmap_watched_tabs WHERE tab_external_id = ANY($1)`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, pq.Array(tabIDs)); err != nil {
		return wrap("remove watched tabs", err)
	}
	return nil
}

type cardRow struct {
	TabID int64 `db:"tab_id"`
	domain.Card
}

// LoadMostRecent returns the snapshot of the newest roadmap activity with
// database ids attached, or nil when nothing has been stored yet.
func (s *RoadmapStore) LoadMostRecent(ctx context.Context) (*domain.Roadmap, error) {
	exec := GetExecutor(ctx, s.db)

	var activity domain.RoadmapActivity
	err := sqlx.GetContext(ctx, exec, &activity,
		`SELECT id, timestamp FROM roadmap_activities ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("load latest roadmap activity", err)
	}

	tabQuery := `
		SELECT rt.id AS internal_id, rt.external_id, rt.name, rt.slug
		FROM roadmap_tab_assignments ta
		INNER JOIN roadmap_tabs rt ON rt.id = ta.tab_id
		WHERE ta.activity_id = $1
		ORDER BY ta.id`

	var tabs []domain.Tab
	if err := sqlx.SelectContext(ctx, exec, &tabs, tabQuery, activity.ID); err != nil {
		return nil, wrap("load roadmap tabs", err)
	}

	cardQuery := `
		SELECT
			ca.tab_id,
			rc.id AS internal_id,
			rc.external_id,
			rc.name,
			rc.description,
			rc.image_url,
			rc.slug,
			ca.section_position,
			ca.card_position
		FROM roadmap_card_assignments ca
		INNER JOIN roadmap_cards rc ON rc.id = ca.card_id
		WHERE ca.activity_id = $1
		ORDER BY ca.id`

	var rows []cardRow
	if err := sqlx.SelectContext(ctx, exec, &rows, cardQuery, activity.ID); err != nil {
		return nil, wrap("load roadmap cards", err)
	}

	externalIDs := make(map[int64]string, len(tabs))
	for _, t := range tabs {
		externalIDs[*t.InternalID] = t.ExternalID
	}

	cards := make(map[string][]domain.Card)
	for _, r := range rows {
		tabID, ok := externalIDs[r.TabID]
		if !ok {
			return nil, fmt.Errorf("card %s assigned to tab %d missing from activity %d: %w",
				r.ExternalID, r.TabID, activity.ID, domain.ErrInvariant)
		}
		cards[tabID] = append(cards[tabID], r.Card)
	}

	return domain.NewRoadmap(tabs, cards)
}

func (s *RoadmapStore) InsertActivity(ctx context.Context, timestamp time.Time) (int64, error) {
	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx,
		`INSERT INTO roadmap_activities (timestamp) VALUES ($1) RETURNING id`, timestamp,
	).Scan(&id)
	if err != nil {
		return 0, wrap("insert roadmap activity", err)
	}
	return id, nil
}

// InsertTab returns the id of the tab row for the tab's external id, updating
// its name and slug when a removed tab comes back.
func (s *RoadmapStore) InsertTab(ctx context.Context, tab domain.Tab) (int64, error) {
	query := `
		INSERT INTO roadmap_tabs (external_id, name, slug)
		VALUES ($1, $2, $3)
		ON CONFLICT (external_id) DO UPDATE SET
			name = EXCLUDED.name,
			slug = EXCLUDED.slug
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query, tab.ExternalID, tab.Name, tab.Slug).Scan(&id)
	if err != nil {
		return 0, wrap("insert roadmap tab", err)
	}
	return id, nil
}

func (s *RoadmapStore) InsertCard(ctx context.Context, card domain.Card) (int64, error) {
	query := `
		INSERT INTO roadmap_cards (external_id, name, description, image_url, slug)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		card.ExternalID,
		card.Name,
		card.Description,
		card.ImageURL,
		card.Slug,
	).Scan(&id)
	if err != nil {
		return 0, wrap("insert roadmap card", err)
	}
	return id, nil
}

func (s *RoadmapStore) InsertTabAssignment(ctx context.Context, activityID, tabID int64) error {
	query := `INSERT INTO roadmap_tab_assignments (activity_id, tab_id) VALUES ($1, $2)`

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, query, activityID, tabID); err != nil {
		return wrap("insert tab assignment", err)
	}
	return nil
}

func (s *RoadmapStore) InsertCardAssignment(ctx context.Context, a domain.CardAssignment) error {
	query := `
		INSERT INTO roadmap_card_assignments (activity_id, tab_id, card_id, section_position, card_position)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		a.ActivityID,
		a.TabID,
		a.CardID,
		a.SectionPosition,
		a.CardPosition,
	)
	if err != nil {
		return wrap("insert card assignment", err)
	}
	return nil
}

func (s *RoadmapStore) InsertChange(ctx context.Context, c domain.ChangeRecord) (int64, error) {
	query := `
		INSERT INTO roadmap_changes (type, activity_id, previous_card_id, current_card_id, tab_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := GetExecutor(ctx, s.db).QueryRowxContext(ctx, query,
		string(c.Type),
		c.ActivityID,
		c.PreviousCardID,
		c.CurrentCardID,
		c.TabID,
	).Scan(&id)
	if err != nil {
		return 0, wrap("insert roadmap change", err)
	}
	return id, nil
}

// ListActivities returns roadmap activities newest first.
func (s *RoadmapStore) ListActivities(ctx context.Context, limit, offset int) ([]domain.RoadmapActivity, error) {
	query := `
		SELECT id, timestamp
		FROM roadmap_activities
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`

	var activities []domain.RoadmapActivity
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &activities, query, limit, offset); err != nil {
		return nil, wrap("list roadmap activities", err)
	}
	return activities, nil
}

func (s *RoadmapStore) ListChanges(ctx context.Context, activityID int64) ([]domain.ChangeRecord, error) {
	query := `
		SELECT id, type, activity_id, previous_card_id, current_card_id, tab_id
		FROM roadmap_changes
		WHERE activity_id = $1
		ORDER BY id`

	var changes []domain.ChangeRecord
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &changes, query, activityID); err != nil {
		return nil, wrap("list roadmap changes", err)
	}
	return changes, nil
}
