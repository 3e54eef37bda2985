package domain

import (
	"fmt"
	"sort"
	"time"
)

// Tab identity is ExternalID alone; name and slug changes do not make a new tab.
type Tab struct {
	ExternalID string `db:"external_id"`
	Name       string `db:"name"`
	Slug       string `db:"slug"`
	InternalID *int64 `db:"internal_id"`
}

// Card identity is ExternalID. Positions describe the assignment, not the content.
type Card struct {
	ExternalID      string  `db:"external_id"`
	Name            string  `db:"name"`
	Description     string  `db:"description"`
	ImageURL        *string `db:"image_url"`
	Slug            string  `db:"slug"`
	InternalID      *int64  `db:"internal_id"`
	SectionPosition int     `db:"section_position"`
	CardPosition    int     `db:"card_position"`
}

// SameContent reports whether two cards carry the same name, description and image.
func (c Card) SameContent(o Card) bool {
	if c.Name != o.Name || c.Description != o.Description {
		return false
	}
	if c.ImageURL == nil || o.ImageURL == nil {
		return c.ImageURL == nil && o.ImageURL == nil
	}
	return *c.ImageURL == *o.ImageURL
}

// Roadmap is one snapshot of the watched roadmap tabs. Cards maps a tab
// external id to that tab's cards sorted by card external id.
type Roadmap struct {
	Tabs  []Tab
	Cards map[string][]Card
}

// NewRoadmap builds a snapshot, sorting every card sequence by external id.
// Every key of cards must name a tab in tabs.
func NewRoadmap(tabs []Tab, cards map[string][]Card) (*Roadmap, error) {
	if cards == nil {
		cards = make(map[string][]Card)
	}
	for key, list := range cards {
		if _, ok := tabIndex(tabs, key); !ok {
			return nil, fmt.Errorf("cards for unknown tab %q: %w", key, ErrInvariant)
		}
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].ExternalID < list[j].ExternalID
		})
	}
	return &Roadmap{Tabs: tabs, Cards: cards}, nil
}

// TabIndex returns the position of the tab with the given external id.
func (r *Roadmap) TabIndex(externalID string) (int, bool) {
	return tabIndex(r.Tabs, externalID)
}

// FindCard binary searches the tab's card sequence by external id.
func (r *Roadmap) FindCard(tabID, externalID string) (int, bool) {
	list := r.Cards[tabID]
	i := sort.Search(len(list), func(i int) bool {
		return list[i].ExternalID >= externalID
	})
	if i < len(list) && list[i].ExternalID == externalID {
		return i, true
	}
	return 0, false
}

// CardCount returns the number of cards across all tabs.
func (r *Roadmap) CardCount() int {
	n := 0
	for _, list := range r.Cards {
		n += len(list)
	}
	return n
}

func tabIndex(tabs []Tab, externalID string) (int, bool) {
	for i, t := range tabs {
		if t.ExternalID == externalID {
			return i, true
		}
	}
	return 0, false
}

// RoadmapActivity is one persisted roadmap snapshot.
type RoadmapActivity struct {
	ID        int64     `db:"id"`
	Timestamp time.Time `db:"timestamp"`
}

type CardAssignment struct {
	ActivityID      int64
	TabID           int64
	CardID          int64
	SectionPosition int
	CardPosition    int
}

// ChangeRecord is one row of the roadmap change log.
type ChangeRecord struct {
	ID             int64      `db:"id"`
	Type           ChangeType `db:"type"`
	ActivityID     int64      `db:"activity_id"`
	PreviousCardID *int64     `db:"previous_card_id"`
	CurrentCardID  *int64     `db:"current_card_id"`
	TabID          *int64     `db:"tab_id"`
}
