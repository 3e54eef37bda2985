package roadmap

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"change_tracker/internal/domain"
)

// Page is the subset of the roadmap page data the tracker reads.
type Page struct {
	Tabs        []PageTab        `json:"portalTabs"`
	Cards       []PageCard       `json:"portalCards"`
	Sections    []PageSection    `json:"portalSections"`
	Assignments []PageAssignment `json:"portalCardAssignments"`
}

type PageTab struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PageCard struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Slug        string  `json:"slug"`
}

type PageSection struct {
	ID       string `json:"id"`
	TabID    string `json:"portalTabId"`
	Position int    `json:"position"`
}

type PageAssignment struct {
	TabID     string `json:"portalTabId"`
	SectionID string `json:"portalSectionId"`
	CardID    string `json:"portalCardId"`
	Position  int    `json:"position"`
}

// DecodePage decodes the JSON extracted by ExtractData.
func DecodePage(data []byte) (*Page, error) {
	var page Page
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode page data: %v: %w", err, domain.ErrParse)
	}
	return &page, nil
}

// BuildSnapshot keeps every tab but only the cards of watched tabs. Watched
// tabs without card assignments get no entry in Cards.
func BuildSnapshot(page *Page, watched []string) (*domain.Roadmap, error) {
	cards := make([]PageCard, len(page.Cards))
	copy(cards, page.Cards)
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })

	tabs := make([]domain.Tab, 0, len(page.Tabs))
	for _, t := range page.Tabs {
		tabs = append(tabs, domain.Tab{ExternalID: t.ID, Name: t.Name, Slug: t.Slug})
	}

	byTab := make(map[string][]domain.Card)
	for _, tabID := range watched {
		sections := make(map[string]int)
		for _, s := range page.Sections {
			if s.TabID == tabID {
				sections[s.ID] = s.Position
			}
		}

		seen := make(map[string]bool)
		var list []domain.Card
		for _, a := range page.Assignments {
			if a.TabID != tabID || seen[a.CardID] {
				continue
			}
			sectionPos, ok := sections[a.SectionID]
			if !ok {
				return nil, fmt.Errorf("assignment of card %s references unknown section %s: %w", a.CardID, a.SectionID, domain.ErrParse)
			}
			i := sort.Search(len(cards), func(i int) bool { return cards[i].ID >= a.CardID })
			if i == len(cards) || cards[i].ID != a.CardID {
				return nil, fmt.Errorf("assignment references unknown card %s: %w", a.CardID, domain.ErrParse)
			}

			c := cards[i]
			seen[a.CardID] = true
			list = append(list, domain.Card{
				ExternalID:      c.ID,
				Name:            c.Name,
				Description:     c.Description,
				ImageURL:        c.ImageURL,
				Slug:            c.Slug,
				SectionPosition: sectionPos,
				CardPosition:    a.Position,
			})
		}

		if len(list) > 0 {
			byTab[tabID] = list
		}
	}

	roadmap, err := domain.NewRoadmap(tabs, byTab)
	if err != nil {
		return nil, fmt.Errorf("build snapshot: %v: %w", err, domain.ErrParse)
	}
	return roadmap, nil
}
