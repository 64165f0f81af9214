package heuristic

import (
	"time"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
)

const (
	baseConfidence = 0.7

	// Placements finishing close to the deadline score the higher
	// urgency bonus: near a deadline the found slot is effectively the
	// only option, so the placement is treated as more certain.
	urgencyBonusRelaxed = 0.2
	urgencyBonusTight   = 0.4
	urgencyThreshold    = 72 * time.Hour

	priorityBonusScale = 0.2
)

// scoreConfidence rates a successful placement in (0, 1]. The score is
// a heuristic used solely to decide whether the orchestrator escalates
// to the external optimizer, not a probability.
func scoreConfidence(task domain.Task, slotEnd, windowEnd time.Time) float64 {
	deadline := task.EffectiveDeadline(windowEnd)

	urgency := urgencyBonusTight
	if deadline.Sub(slotEnd) > urgencyThreshold {
		urgency = urgencyBonusRelaxed
	}

	priority := float64(task.Priority.Weight()) / 3 * priorityBonusScale

	confidence := baseConfidence + urgency + priority
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}

// MeanConfidence averages slot confidence across a run; zero for an
// empty slot list.
func MeanConfidence(slots []domain.PlacedSlot) float64 {
	if len(slots) == 0 {
		return 0
	}
	total := 0.0
	for _, slot := range slots {
		total += slot.Confidence
	}
	return total / float64(len(slots))
}
