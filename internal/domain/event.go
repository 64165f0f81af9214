package domain

import (
	"time"
)

// EventStatus mirrors the external calendar's event status. The scheduler
// only ever emits tentative events; confirmation happens outside this
// service once a human approves the plan.
type EventStatus string

const (
	EventStatusConfirmed EventStatus = "confirmed"
	EventStatusTentative EventStatus = "tentative"
)

func (s EventStatus) String() string {
	return string(s)
}

// CalendarEvent is the externally-facing shape pushed to the calendar
// sync collaborator.
type CalendarEvent struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Status EventStatus `json:"status"`
}

// Interval returns the occupied range consumed by the event.
func (e CalendarEvent) Interval() Interval {
	return Interval{Start: e.Start, End: e.End}
}

// WeekKey formats a time as the plan storage key for its week,
// e.g. "2026-01-05" for a week starting that Monday.
func WeekKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
