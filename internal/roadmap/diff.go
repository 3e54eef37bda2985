package roadmap

import (
	"change_tracker/internal/domain"
)

// Diff classifies every difference between two snapshots. Tab changes come
// first and contiguously, then removals and modifications by previous tab,
// then additions by current tab. Both snapshots must come from
// domain.NewRoadmap so their card sequences are sorted.
func Diff(previous, current *domain.Roadmap) domain.Changes {
	var changes domain.Changes

	for i, tab := range previous.Tabs {
		if _, ok := current.TabIndex(tab.ExternalID); ok {
			changes = append(changes, domain.TabUnchanged{TabIndex: i})
		} else {
			changes = append(changes, domain.TabRemoved{TabIndex: i})
		}
	}
	for i, tab := range current.Tabs {
		if _, ok := previous.TabIndex(tab.ExternalID); !ok {
			changes = append(changes, domain.TabAdded{TabIndex: i})
		}
	}

	for i, tab := range previous.Tabs {
		prevCards, ok := previous.Cards[tab.ExternalID]
		if !ok {
			continue
		}
		if _, ok := current.Cards[tab.ExternalID]; !ok {
			changes = append(changes, domain.TabCardsNotInCurrent{TabIndex: i})
			continue
		}

		currCards := current.Cards[tab.ExternalID]
		for pi, card := range prevCards {
			ci, found := current.FindCard(tab.ExternalID, card.ExternalID)
			switch {
			case !found:
				changes = append(changes, domain.CardRemoved{TabID: tab.ExternalID, CardIndex: pi})
			case card.SameContent(currCards[ci]):
				changes = append(changes, domain.CardUnchanged{TabID: tab.ExternalID, CardIndex: pi})
			default:
				changes = append(changes, domain.CardModified{
					TabID:             tab.ExternalID,
					PreviousCardIndex: pi,
					CurrentCardIndex:  ci,
				})
			}
		}
	}

	for i, tab := range current.Tabs {
		currCards, ok := current.Cards[tab.ExternalID]
		if !ok {
			continue
		}
		if _, ok := previous.Cards[tab.ExternalID]; !ok {
			changes = append(changes, domain.TabCardsNotInPrevious{TabIndex: i})
			continue
		}

		for ci, card := range currCards {
			if _, found := previous.FindCard(tab.ExternalID, card.ExternalID); !found {
				changes = append(changes, domain.CardAdded{TabID: tab.ExternalID, CardIndex: ci})
			}
		}
	}

	return changes
}
