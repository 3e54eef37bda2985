package domain

import "time"

// CheckStats holds statistics about one source check run.
type CheckStats struct {
	Checked    int
	Changed    int
	Unchanged  int
	Failed     int
	Skipped    int
	Disabled   int
	Activities int
	Duration   time.Duration
}

// RoadmapStats holds statistics about one roadmap check run.
type RoadmapStats struct {
	ActivityID int64
	FirstRun   bool
	Changes    int
	Notable    int
	Saved      bool
	Duration   time.Duration
}
