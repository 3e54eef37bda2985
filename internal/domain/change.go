package domain

type ChangeType string

const (
	ChangeTabAdded     ChangeType = "tab_added"
	ChangeTabRemoved   ChangeType = "tab_removed"
	ChangeCardAdded    ChangeType = "card_added"
	ChangeCardRemoved  ChangeType = "card_removed"
	ChangeCardModified ChangeType = "card_modified"
)

// Change is one classified difference between two snapshots. Indices point
// into the previous or current snapshot's arrays, never at database ids.
type Change interface {
	change()
}

type CardUnchanged struct {
	TabID     string
	CardIndex int // previous
}

type CardAdded struct {
	TabID     string
	CardIndex int // current
}

type CardRemoved struct {
	TabID     string
	CardIndex int // previous
}

type CardModified struct {
	TabID             string
	PreviousCardIndex int
	CurrentCardIndex  int
}

type TabUnchanged struct {
	TabIndex int // previous
}

type TabAdded struct {
	TabIndex int // current
}

type TabRemoved struct {
	TabIndex int // previous
}

// TabCardsNotInCurrent means a tab with cards in the previous snapshot has none in the current one.
type TabCardsNotInCurrent struct {
	TabIndex int // previous
}

// TabCardsNotInPrevious means a tab has cards now but had none before.
type TabCardsNotInPrevious struct {
	TabIndex int // current
}

func (CardUnchanged) change()         {}
func (CardAdded) change()             {}
func (CardRemoved) change()           {}
func (CardModified) change()          {}
func (TabUnchanged) change()          {}
func (TabAdded) change()              {}
func (TabRemoved) change()            {}
func (TabCardsNotInCurrent) change()  {}
func (TabCardsNotInPrevious) change() {}

// IsTabChange reports whether c belongs to the tab pass of a diff.
func IsTabChange(c Change) bool {
	switch c.(type) {
	case TabAdded, TabRemoved, TabUnchanged:
		return true
	}
	return false
}

// IsNotable reports whether c is worth telling someone about.
func IsNotable(c Change) bool {
	switch c.(type) {
	case CardAdded, CardModified, CardRemoved, TabAdded, TabRemoved:
		return true
	}
	return false
}

type Changes []Change

func (cs Changes) ShouldNotify() bool {
	return cs.NotifyCount() > 0
}

func (cs Changes) ShouldSave() bool {
	for _, c := range cs {
		switch c.(type) {
		case TabCardsNotInCurrent, TabCardsNotInPrevious:
			return true
		}
	}
	return cs.ShouldNotify()
}

func (cs Changes) NotifyCount() int {
	n := 0
	for _, c := range cs {
		if IsNotable(c) {
			n++
		}
	}
	return n
}

// SplitTabPrefix splits at the first change that is not a tab change.
func (cs Changes) SplitTabPrefix() (tabs, rest Changes) {
	for i, c := range cs {
		if !IsTabChange(c) {
			return cs[:i], cs[i:]
		}
	}
	return cs, nil
}
