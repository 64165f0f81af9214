package domain

import (
	"time"
)

// Interval is a half-open time range [Start, End) that cannot be used
// for new placements.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open intervals intersect.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// OverlapsAny reports whether the interval intersects any of the given
// occupied intervals.
func (i Interval) OverlapsAny(occupied []Interval) bool {
	for _, occ := range occupied {
		if i.Overlaps(occ) {
			return true
		}
	}
	return false
}

// FallbackConfidence is assigned to slots synthesized when no feasible
// placement exists. Downstream consumers treat these as provisional.
const FallbackConfidence = 0.3

// PlacedSlot is the scheduler's output for one task.
type PlacedSlot struct {
	TaskID     string    `json:"task_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Confidence float64   `json:"confidence"`
}

// Interval returns the occupied range consumed by the slot.
func (s PlacedSlot) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

// IsFallback reports whether the slot was synthesized because no
// conflict-free, deadline-respecting placement existed.
func (s PlacedSlot) IsFallback() bool {
	return s.Confidence == FallbackConfidence
}
