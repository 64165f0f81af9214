package slotfinder

import (
	"context"
	"log/slog"
	"time"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
)

const (
	// weeklySearchDays bounds the day walk for bulk weekly placement.
	weeklySearchDays = 7

	weeklyGranularity = time.Hour
)

// Finder searches for the earliest feasible interval for one task
// inside working hours, before the task's deadline, avoiding every
// occupied interval.
type Finder struct {
	workdayStartHour int
	workdayEndHour   int
}

func NewFinder(workdayStartHour, workdayEndHour int) *Finder {
	return &Finder{
		workdayStartHour: workdayStartHour,
		workdayEndHour:   workdayEndHour,
	}
}

// FindSlot walks the window day by day, then candidate start times at
// hour granularity within each day's working hours, and returns the
// first interval that ends before the task's deadline (or the window
// end when the task has none), stays inside the day's working hours,
// and overlaps no occupied interval. The boolean is false when no
// candidate across the window is feasible.
func (f *Finder) FindSlot(
	ctx context.Context,
	task domain.Task,
	windowStart, windowEnd time.Time,
	occupied []domain.Interval,
) (domain.Interval, bool) {
	duration := task.Duration()
	limit := task.EffectiveDeadline(windowEnd)

	for day := 0; day < weeklySearchDays; day++ {
		dayStart := startOfDay(windowStart).AddDate(0, 0, day)
		dayOpen := dayStart.Add(time.Duration(f.workdayStartHour) * time.Hour)
		dayClose := dayStart.Add(time.Duration(f.workdayEndHour) * time.Hour)

		for candidate := dayOpen; candidate.Before(dayClose); candidate = candidate.Add(weeklyGranularity) {
			// The walk position matters only on the first day.
			if candidate.Before(windowStart) {
				continue
			}

			end := candidate.Add(duration)
			if end.After(limit) {
				continue
			}
			if end.After(dayClose) {
				// Slot must not spill past closing.
				continue
			}

			slot := domain.Interval{Start: candidate, End: end}
			if slot.OverlapsAny(occupied) {
				continue
			}

			slog.DebugContext(ctx, "slot found",
				slog.String("task_id", task.ID),
				slog.Time("start", slot.Start),
				slog.Time("end", slot.End),
				slog.Int("day_offset", day),
			)
			return slot, true
		}
	}

	slog.DebugContext(ctx, "no feasible slot in window",
		slog.String("task_id", task.ID),
		slog.Time("window_start", windowStart),
		slog.Time("deadline", limit),
		slog.Int("duration_minutes", task.DurationMinutes),
	)
	return domain.Interval{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
