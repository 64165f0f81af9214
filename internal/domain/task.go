package domain

import (
	"time"
)

// Priority classifies how important a task is, independent of its deadline.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) String() string {
	return string(p)
}

// Weight returns the ordinal weight used for ordering and confidence
// scoring: high=3, medium=2, low=1. Unknown values weigh like low.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work to place on the calendar. Tasks are immutable
// inputs to the scheduler; the core never mutates them.
type Task struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	DurationMinutes int        `json:"duration_minutes"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Priority        Priority   `json:"priority"`
}

// Duration returns the required block length.
func (t Task) Duration() time.Duration {
	return time.Duration(t.DurationMinutes) * time.Minute
}

// HasDeadline reports whether the task is deadline-constrained.
func (t Task) HasDeadline() bool {
	return t.Deadline != nil
}

// EffectiveDeadline resolves the deadline used for placement: the task's
// own deadline when present, otherwise the end of the scheduling window.
func (t Task) EffectiveDeadline(windowEnd time.Time) time.Time {
	if t.Deadline != nil {
		return *t.Deadline
	}
	return windowEnd
}
