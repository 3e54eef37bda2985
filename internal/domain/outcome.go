package domain

import "time"

// Outcome is the result of checking one source.
type Outcome interface {
	outcome()
}

// OutcomeDisabled means the source was not enabled and was not fetched.
type OutcomeDisabled struct{}

// OutcomeFailed means the fetch or parse failed.
type OutcomeFailed struct {
	Reason error
}

// OutcomeUnchanged means the fetch succeeded but nothing new was found.
type OutcomeUnchanged struct{}

// OutcomeChanged carries the new items, newest first.
type OutcomeChanged struct {
	MostRecent time.Time
	Items      []FeedItem
}

func (OutcomeDisabled) outcome()  {}
func (OutcomeFailed) outcome()    {}
func (OutcomeUnchanged) outcome() {}
func (OutcomeChanged) outcome()   {}
