package domain

import (
	"time"
)

// SyncRecord captures the outcome of pushing a week's events to the
// external calendar.
type SyncRecord struct {
	WeekKey  string    `json:"week_key"`
	Synced   int       `json:"synced"`
	EventIDs []string  `json:"event_ids"`
	SyncedAt time.Time `json:"synced_at"`
}

func NewSyncRecord(weekKey string, synced int, eventIDs []string) *SyncRecord {
	return &SyncRecord{
		WeekKey:  weekKey,
		Synced:   synced,
		EventIDs: eventIDs,
		SyncedAt: time.Now().UTC(),
	}
}
