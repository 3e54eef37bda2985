package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"change_tracker/internal/domain"
)

type SourceStore interface {
	List(ctx context.Context) ([]domain.Source, error)
	RecordFailure(ctx context.Context, id int64, failedCount int, enabled bool) error
	RecordSuccess(ctx context.Context, id int64, lastChecked time.Time) error
}

type ActivityStore interface {
	Insert(ctx context.Context, sourceID int64, postURL string, timestamp time.Time) (int64, error)
}

type RoadmapStore interface {
	ListWatchedTabs(ctx context.Context) ([]string, error)
	// LoadMostRecent returns nil when no snapshot has been stored yet.
	LoadMostRecent(ctx context.Context) (*domain.Roadmap, error)
	InsertActivity(ctx context.Context, timestamp time.Time) (int64, error)
	InsertTab(ctx context.Context, tab domain.Tab) (int64, error)
	InsertCard(ctx context.Context, card domain.Card) (int64, error)
	InsertTabAssignment(ctx context.Context, activityID, tabID int64) error
	InsertCardAssignment(ctx context.Context, assignment domain.CardAssignment) error
	InsertChange(ctx context.Context, change domain.ChangeRecord) (int64, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type FeedClient interface {
	Fetch(ctx context.Context, url string) (*domain.Feed, error)
}

type SnapshotClient interface {
	Fetch(ctx context.Context, watched []string) (*domain.Roadmap, error)
}

type Notifier interface {
	Notify(ctx context.Context, subject, text, html string) error
}
