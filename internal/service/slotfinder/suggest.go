package slotfinder

import (
	"context"
	"log/slog"
	"time"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
)

const (
	suggestGranularity = 30 * time.Minute

	// defaultSuggestHorizonDays applies when the task has no deadline.
	defaultSuggestHorizonDays = 7
)

// Suggester finds the next open slot for a single task, used by the
// "suggest a time" flow rather than bulk weekly planning. It searches at
// half-hour granularity, skips weekends, and clamps the horizon to the
// task's deadline.
type Suggester struct {
	finderHours *Finder
	horizonDays int
}

func NewSuggester(workdayStartHour, workdayEndHour, horizonDays int) *Suggester {
	return &Suggester{
		finderHours: NewFinder(workdayStartHour, workdayEndHour),
		horizonDays: horizonDays,
	}
}

// SuggestSlot returns the earliest feasible weekday slot between now and
// the horizon. With a deadline the horizon is the lesser of the deadline
// and horizonDays from now; without one it is defaultSuggestHorizonDays.
func (s *Suggester) SuggestSlot(
	ctx context.Context,
	task domain.Task,
	now time.Time,
	occupied []domain.Interval,
) (domain.Interval, bool) {
	duration := task.Duration()

	horizon := now.AddDate(0, 0, defaultSuggestHorizonDays)
	if task.HasDeadline() {
		horizon = now.AddDate(0, 0, s.horizonDays)
		if task.Deadline.Before(horizon) {
			horizon = *task.Deadline
		}
	}

	searchFrom := roundUpToHalfHour(now)

	for dayStart := startOfDay(now); dayStart.Before(horizon); dayStart = dayStart.AddDate(0, 0, 1) {
		if wd := dayStart.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		dayOpen := dayStart.Add(time.Duration(s.finderHours.workdayStartHour) * time.Hour)
		dayClose := dayStart.Add(time.Duration(s.finderHours.workdayEndHour) * time.Hour)

		candidate := dayOpen
		if candidate.Before(searchFrom) {
			candidate = roundUpToHalfHour(searchFrom)
		}

		for ; candidate.Before(dayClose); candidate = candidate.Add(suggestGranularity) {
			end := candidate.Add(duration)
			if end.After(horizon) {
				continue
			}
			if end.After(dayClose) {
				continue
			}

			slot := domain.Interval{Start: candidate, End: end}
			if slot.OverlapsAny(occupied) {
				continue
			}

			slog.DebugContext(ctx, "suggested slot",
				slog.String("task_id", task.ID),
				slog.Time("start", slot.Start),
				slog.Time("end", slot.End),
			)
			return slot, true
		}
	}

	slog.DebugContext(ctx, "no suggestion within horizon",
		slog.String("task_id", task.ID),
		slog.Time("horizon", horizon),
	)
	return domain.Interval{}, false
}

// roundUpToHalfHour snaps a mid-workday start forward to the next
// half-hour boundary.
func roundUpToHalfHour(t time.Time) time.Time {
	rounded := t.Truncate(30 * time.Minute)
	if rounded.Before(t) {
		rounded = rounded.Add(30 * time.Minute)
	}
	return rounded
}
