package domain

import "errors"

var (
	// ErrNetwork covers unreachable hosts, timeouts and non-success statuses.
	ErrNetwork = errors.New("network error")
	// ErrParse covers malformed documents and unparseable timestamps.
	ErrParse = errors.New("parse error")
	// ErrPersistence covers constraint violations, lost connections and failed transactions.
	ErrPersistence = errors.New("persistence error")
	// ErrInvariant means a diff result does not match the snapshots it was computed from.
	ErrInvariant = errors.New("logic invariant violation")
)
