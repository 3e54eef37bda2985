package domain

import "time"

type Source struct {
	ID          int64     `db:"id"`
	URL         string    `db:"url"`
	Enabled     bool      `db:"enabled"`
	FailedCount int       `db:"failed_count"`
	LastChecked time.Time `db:"last_checked"`
}

type Activity struct {
	ID        int64     `db:"id"`
	SourceID  int64     `db:"source_id"`
	SourceURL string    `db:"source_url"` // filled on list queries only
	PostURL   string    `db:"post_url"`
	Timestamp time.Time `db:"timestamp"`
}

// Feed is a parsed RSS or Atom document.
type Feed struct {
	Title   string
	Updated *time.Time
	Entries []FeedEntry
}

type FeedEntry struct {
	Title string
	// Published is nil when the entry carries no parseable date.
	Published  *time.Time
	Links      []Link
	Summary    string
	Content    string
	ContentSrc string
}

type Link struct {
	Href string
	Rel  string
	Type string
}

// FeedItem is a feed entry selected for recording.
type FeedItem struct {
	Title     string
	URL       string
	Body      string
	Published time.Time
}
