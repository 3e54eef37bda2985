// Package health decides how a source's state moves after each check.
package health

import (
	"time"

	"change_tracker/internal/domain"
)

const DefaultThreshold = 10

type Action int

const (
	// ActionNone leaves the stored source untouched.
	ActionNone Action = iota
	ActionRecordFailure
	ActionRecordSuccess
)

func (a Action) String() string {
	switch a {
	case ActionRecordFailure:
		return "record_failure"
	case ActionRecordSuccess:
		return "record_success"
	default:
		return "none"
	}
}

// Decision is the next stored state of a source.
type Decision struct {
	Action      Action
	Enabled     bool
	FailedCount int
	LastChecked time.Time
	// JustDisabled is set when this decision flips Enabled to false.
	JustDisabled bool
}

type Tracker struct {
	threshold int
}

func NewTracker(threshold int) *Tracker {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	return &Tracker{threshold: threshold}
}

func (t *Tracker) Threshold() int {
	return t.threshold
}

// Decide maps an outcome onto the source's next state. Unchanged keeps
// last_checked where it was so the next cycle scans against the same watermark.
func (t *Tracker) Decide(src domain.Source, outcome domain.Outcome) Decision {
	current := Decision{
		Action:      ActionNone,
		Enabled:     src.Enabled,
		FailedCount: src.FailedCount,
		LastChecked: src.LastChecked,
	}

	switch o := outcome.(type) {
	case domain.OutcomeDisabled, domain.OutcomeUnchanged:
		return current
	case domain.OutcomeFailed:
		count := src.FailedCount + 1
		enabled := src.Enabled && count < t.threshold
		return Decision{
			Action:       ActionRecordFailure,
			Enabled:      enabled,
			FailedCount:  count,
			LastChecked:  src.LastChecked,
			JustDisabled: src.Enabled && !enabled,
		}
	case domain.OutcomeChanged:
		return Decision{
			Action:      ActionRecordSuccess,
			Enabled:     src.Enabled,
			FailedCount: 0,
			LastChecked: o.MostRecent,
		}
	default:
		return current
	}
}
