package heuristic

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
	"github.com/studyflowapp/studyflow-scheduling/internal/observability/metrics"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/slotfinder"
)

const schedulingWindowDays = 7

// Scheduler performs greedy sequential placement: tasks are ordered by
// urgency, each is placed by the slot finder against an occupied set
// that accumulates earlier placements, and every task always receives a
// slot. It is a pure function of its inputs apart from telemetry.
type Scheduler struct {
	finder          *slotfinder.Finder
	workdayEndHour  int
	scheduleMetrics *metrics.ScheduleMetrics
}

func NewScheduler(finder *slotfinder.Finder, workdayEndHour int, scheduleMetrics *metrics.ScheduleMetrics) *Scheduler {
	return &Scheduler{
		finder:          finder,
		workdayEndHour:  workdayEndHour,
		scheduleMetrics: scheduleMetrics,
	}
}

// Schedule places every task into the week starting at weekStart.
// Exactly one slot per input task is returned: a found slot with a
// computed confidence, or a low-confidence fallback anchored at the
// first day's closing hour when nothing fits.
func (s *Scheduler) Schedule(
	ctx context.Context,
	tasks []domain.Task,
	weekStart time.Time,
	existing []domain.Interval,
) []domain.PlacedSlot {
	weekEnd := weekStart.AddDate(0, 0, schedulingWindowDays)

	ordered := orderTasks(tasks)

	occupied := make([]domain.Interval, 0, len(existing)+len(tasks))
	occupied = append(occupied, existing...)

	slots := make([]domain.PlacedSlot, 0, len(ordered))
	fallbackCount := 0

	for _, task := range ordered {
		interval, found := s.finder.FindSlot(ctx, task, weekStart, weekEnd, occupied)
		if !found {
			slot := s.fallbackSlot(task, weekStart)
			slots = append(slots, slot)
			fallbackCount++

			if s.scheduleMetrics != nil {
				s.scheduleMetrics.RecordFallbackSlot(ctx, task.Priority.String())
				s.scheduleMetrics.RecordTaskPlaced(ctx, task.Priority.String(), "fallback")
			}
			slog.WarnContext(ctx, "no feasible slot, issuing fallback",
				slog.String("task_id", task.ID),
				slog.Int("duration_minutes", task.DurationMinutes),
				slog.Time("fallback_start", slot.Start),
			)
			continue
		}

		slot := domain.PlacedSlot{
			TaskID:     task.ID,
			Start:      interval.Start,
			End:        interval.End,
			Confidence: scoreConfidence(task, interval.End, weekEnd),
		}
		slots = append(slots, slot)
		occupied = append(occupied, interval)

		if s.scheduleMetrics != nil {
			s.scheduleMetrics.RecordTaskPlaced(ctx, task.Priority.String(), "scheduled")
		}
	}

	slog.DebugContext(ctx, "heuristic placement completed",
		slog.Int("task_count", len(tasks)),
		slog.Int("fallback_count", fallbackCount),
	)

	return slots
}

// fallbackSlot guarantees a placement when the window is exhausted: a
// best-effort marker at the first day's closing hour. It may overlap or
// miss the deadline; the fixed low confidence flags it for downstream
// re-planning.
func (s *Scheduler) fallbackSlot(task domain.Task, weekStart time.Time) domain.PlacedSlot {
	day := weekStart
	anchor := time.Date(day.Year(), day.Month(), day.Day(), s.workdayEndHour, 0, 0, 0, day.Location())

	return domain.PlacedSlot{
		TaskID:     task.ID,
		Start:      anchor,
		End:        anchor.Add(task.Duration()),
		Confidence: domain.FallbackConfidence,
	}
}

// orderTasks sorts without mutating the input: deadline ascending with
// dated tasks ahead of undated ones regardless of priority, then
// priority descending. Ties keep their incoming order.
func orderTasks(tasks []domain.Task) []domain.Task {
	ordered := make([]domain.Task, len(tasks))
	copy(ordered, tasks)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]

		if a.HasDeadline() != b.HasDeadline() {
			return a.HasDeadline()
		}
		if a.HasDeadline() && b.HasDeadline() && !a.Deadline.Equal(*b.Deadline) {
			return a.Deadline.Before(*b.Deadline)
		}
		return a.Priority.Weight() > b.Priority.Weight()
	})

	return ordered
}
