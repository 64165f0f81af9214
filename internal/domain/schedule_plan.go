package domain

import (
	"time"
)

// SchedulePlan is a finished scheduling run for one week, as persisted
// between runs and served back to the UI.
type SchedulePlan struct {
	WeekKey        string          `json:"week_key"`
	Events         []CalendarEvent `json:"events"`
	MeanConfidence float64         `json:"mean_confidence"`
	Source         string          `json:"source"`
	PlannedAt      time.Time       `json:"planned_at"`
	TotalPlanned   int             `json:"total_planned"`
}

func NewSchedulePlan(weekKey string, events []CalendarEvent, meanConfidence float64, source string) *SchedulePlan {
	return &SchedulePlan{
		WeekKey:        weekKey,
		Events:         events,
		MeanConfidence: meanConfidence,
		Source:         source,
		PlannedAt:      time.Now().UTC(),
		TotalPlanned:   len(events),
	}
}
