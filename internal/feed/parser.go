// Package feed fetches and parses RSS, Atom and JSON feed documents.
package feed

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/mmcdole/gofeed"
	"github.com/mmcdole/gofeed/atom"

	"change_tracker/internal/domain"
)

// Parse detects the feed format and decodes it. Atom documents go through
// the Atom parser directly so link relations and content src survive.
func Parse(data []byte) (*domain.Feed, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty document: %w", domain.ErrParse)
	}

	switch gofeed.DetectFeedType(bytes.NewReader(trimmed)) {
	case gofeed.FeedTypeAtom:
		return parseAtom(trimmed)
	case gofeed.FeedTypeRSS, gofeed.FeedTypeJSON:
		return parseUniversal(trimmed)
	default:
		return nil, fmt.Errorf("unknown format (expected rss, rdf, atom or json feed): %w", domain.ErrParse)
	}
}

func parseUniversal(data []byte) (*domain.Feed, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode feed: %v: %w", err, domain.ErrParse)
	}

	feed := &domain.Feed{
		Title:   strings.TrimSpace(parsed.Title),
		Updated: firstTime(parsed.UpdatedParsed, parsed.PublishedParsed),
		Entries: make([]domain.FeedEntry, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		feed.Entries = append(feed.Entries, domain.FeedEntry{
			Title:     strings.TrimSpace(item.Title),
			Published: firstTime(item.PublishedParsed, item.UpdatedParsed),
			Links:     itemLinks(item),
			Summary:   strings.TrimSpace(item.Description),
			Content:   strings.TrimSpace(item.Content),
		})
	}
	return feed, nil
}

func itemLinks(item *gofeed.Item) []domain.Link {
	hrefs := item.Links
	if len(hrefs) == 0 && item.Link != "" {
		hrefs = []string{item.Link}
	}

	links := make([]domain.Link, 0, len(hrefs))
	for _, href := range hrefs {
		if href = strings.TrimSpace(href); href != "" {
			links = append(links, domain.Link{Href: href})
		}
	}
	return links
}

func parseAtom(data []byte) (*domain.Feed, error) {
	ap := &atom.Parser{}
	parsed, err := ap.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode atom: %v: %w", err, domain.ErrParse)
	}

	feed := &domain.Feed{
		Title:   strings.TrimSpace(parsed.Title),
		Updated: firstTime(parsed.UpdatedParsed),
		Entries: make([]domain.FeedEntry, 0, len(parsed.Entries)),
	}

	for _, e := range parsed.Entries {
		if e == nil {
			continue
		}

		links := make([]domain.Link, 0, len(e.Links))
		for _, l := range e.Links {
			if l == nil || strings.TrimSpace(l.Href) == "" {
				continue
			}
			rel := l.Rel
			if rel == "" {
				rel = "alternate"
			}
			links = append(links, domain.Link{Href: strings.TrimSpace(l.Href), Rel: rel, Type: l.Type})
		}

		entry := domain.FeedEntry{
			Title:     strings.TrimSpace(e.Title),
			Published: firstTime(e.PublishedParsed, e.UpdatedParsed),
			Links:     links,
			Summary:   strings.TrimSpace(e.Summary),
		}
		if e.Content != nil {
			entry.Content = strings.TrimSpace(e.Content.Value)
			entry.ContentSrc = strings.TrimSpace(e.Content.Src)
		}

		feed.Entries = append(feed.Entries, entry)
	}

	return feed, nil
}

// rfc822Zones holds the North American RFC 822 zone names. time.Parse keeps
// a zone name it cannot resolve with a zero offset.
var rfc822Zones = map[string]int{
	"EST": -5 * 3600,
	"MST": -7 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

func resolveZone(t time.Time) time.Time {
	name, offset := t.Zone()
	if offset != 0 {
		return t
	}
	if zoneOffset, ok := rfc822Zones[name]; ok {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
			time.FixedZone(name, zoneOffset))
	}
	return t
}

// firstTime returns the first parsed candidate in UTC.
func firstTime(candidates ...*time.Time) *time.Time {
	for _, c := range candidates {
		if c == nil || c.IsZero() {
			continue
		}
		t := resolveZone(*c).UTC()
		return &t
	}
	return nil
}
