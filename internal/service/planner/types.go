package planner

import (
	"time"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
)

// Plan sources reported in responses and run records.
const (
	SourceHeuristic = "heuristic"
	SourceOptimizer = "optimizer"
)

// Response is the outcome of one scheduling run. Every run yields a
// complete event list; Source records whether the optimizer's
// arrangement or the local heuristic produced it.
type Response struct {
	Events         []domain.CalendarEvent `json:"events"`
	MeanConfidence float64                `json:"mean_confidence"`
	FallbackCount  int                    `json:"fallback_count"`
	Escalated      bool                   `json:"escalated"`
	Source         string                 `json:"source"`
}

// SlotProposal is one entry of the optimizer's returned arrangement.
type SlotProposal struct {
	TaskID string    `json:"taskId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}
