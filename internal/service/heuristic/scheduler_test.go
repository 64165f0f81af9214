package heuristic

import (
	"context"
	"testing"
	"time"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/slotfinder"
	"github.com/studyflowapp/studyflow-scheduling/internal/testutil"
)

func newTestScheduler() *Scheduler {
	return NewScheduler(slotfinder.NewFinder(9, 17), 17, nil)
}

func slotByTaskID(t *testing.T, slots []domain.PlacedSlot, taskID string) domain.PlacedSlot {
	t.Helper()
	for _, slot := range slots {
		if slot.TaskID == taskID {
			return slot
		}
	}
	t.Fatalf("no slot placed for task %q", taskID)
	return domain.PlacedSlot{}
}

func TestScheduler_Schedule_OrdersByDeadlineThenPriority(t *testing.T) {
	scheduler := newTestScheduler()
	weekStart := testutil.MondayWeekStart()

	// a has the highest priority but no deadline; deadline-bearing tasks
	// go first, nearest deadline leading.
	tasks := []domain.Task{
		testutil.NewTaskWithDeadline("a", 60, weekStart.AddDate(0, 0, 5), domain.PriorityHigh),
		testutil.NewTaskWithDeadline("b", 60, weekStart.AddDate(0, 0, 2), domain.PriorityLow),
		{ID: "c", Title: "task c", DurationMinutes: 60, Priority: domain.PriorityHigh},
	}

	slots := scheduler.Schedule(context.Background(), tasks, weekStart, nil)

	if len(slots) != 3 {
		t.Fatalf("Schedule() returned %d slots, want 3", len(slots))
	}

	slotA := slotByTaskID(t, slots, "a")
	slotB := slotByTaskID(t, slots, "b")
	slotC := slotByTaskID(t, slots, "c")

	if !slotB.Start.Before(slotA.Start) {
		t.Errorf("earlier deadline placed at %v, later deadline at %v; want earlier first", slotB.Start, slotA.Start)
	}
	if !slotA.Start.Before(slotC.Start) {
		t.Errorf("dated task placed at %v, undated at %v; want dated first", slotA.Start, slotC.Start)
	}
}

func TestScheduler_Schedule_PriorityBreaksDeadlineTies(t *testing.T) {
	scheduler := newTestScheduler()
	weekStart := testutil.MondayWeekStart()
	deadline := weekStart.AddDate(0, 0, 1)

	// a and c share a deadline; a goes first on priority. b has none and
	// is placed after both despite appearing between them.
	tasks := []domain.Task{
		testutil.NewTaskWithDeadline("a", 60, deadline, domain.PriorityHigh),
		{ID: "b", Title: "task b", DurationMinutes: 120, Priority: domain.PriorityLow},
		testutil.NewTaskWithDeadline("c", 30, deadline, domain.PriorityMedium),
	}

	slots := scheduler.Schedule(context.Background(), tasks, weekStart, nil)

	if len(slots) != 3 {
		t.Fatalf("Schedule() returned %d slots, want 3", len(slots))
	}

	slotA := slotByTaskID(t, slots, "a")
	slotB := slotByTaskID(t, slots, "b")
	slotC := slotByTaskID(t, slots, "c")

	if !slotA.Start.Before(slotC.Start) {
		t.Errorf("high priority placed at %v, medium at %v; want high first on a shared deadline", slotA.Start, slotC.Start)
	}
	if !slotC.Start.Before(slotB.Start) {
		t.Errorf("dated task placed at %v, undated at %v; want dated first", slotC.Start, slotB.Start)
	}

	dayClose := weekStart.Add(17 * time.Hour)
	for _, slot := range []domain.PlacedSlot{slotA, slotC} {
		if slot.End.After(deadline) {
			t.Errorf("slot for task %q ends %v, after deadline %v", slot.TaskID, slot.End, deadline)
		}
		if slot.End.After(dayClose) {
			t.Errorf("slot for task %q ends %v, past the first day's close %v", slot.TaskID, slot.End, dayClose)
		}
	}
}

func TestScheduler_Schedule_OneSlotPerTaskWithoutOverlap(t *testing.T) {
	scheduler := newTestScheduler()
	weekStart := testutil.MondayWeekStart()

	tasks := []domain.Task{
		testutil.NewTask("t1", 120),
		testutil.NewTask("t2", 60),
		testutil.NewTask("t3", 90),
		testutil.NewTask("t4", 30),
	}

	existing := []domain.Interval{
		{Start: weekStart.Add(10 * time.Hour), End: weekStart.Add(12 * time.Hour)},
	}

	slots := scheduler.Schedule(context.Background(), tasks, weekStart, existing)

	if len(slots) != len(tasks) {
		t.Fatalf("Schedule() returned %d slots, want %d", len(slots), len(tasks))
	}

	occupied := make([]domain.Interval, len(existing))
	copy(occupied, existing)
	for _, slot := range slots {
		if slot.IsFallback() {
			t.Errorf("task %q fell back although the week has room", slot.TaskID)
			continue
		}
		if slot.Interval().OverlapsAny(occupied) {
			t.Errorf("slot for task %q overlaps an earlier placement or existing event", slot.TaskID)
		}
		occupied = append(occupied, slot.Interval())
	}
}

func TestScheduler_Schedule_FallbackWhenWeekIsFull(t *testing.T) {
	scheduler := newTestScheduler()
	weekStart := testutil.MondayWeekStart()

	existing := make([]domain.Interval, 0, 7)
	for day := 0; day < 7; day++ {
		dayStart := weekStart.AddDate(0, 0, day)
		existing = append(existing, domain.Interval{
			Start: dayStart.Add(9 * time.Hour),
			End:   dayStart.Add(17 * time.Hour),
		})
	}

	slots := scheduler.Schedule(context.Background(), []domain.Task{testutil.NewTask("t1", 60)}, weekStart, existing)

	if len(slots) != 1 {
		t.Fatalf("Schedule() returned %d slots, want 1", len(slots))
	}

	slot := slots[0]
	if !slot.IsFallback() {
		t.Fatal("slot.IsFallback() = false, want true for a full week")
	}
	if slot.Confidence != domain.FallbackConfidence {
		t.Errorf("fallback confidence = %v, want %v", slot.Confidence, domain.FallbackConfidence)
	}
	wantStart := weekStart.Add(17 * time.Hour)
	if !slot.Start.Equal(wantStart) {
		t.Errorf("fallback start = %v, want closing hour anchor %v", slot.Start, wantStart)
	}
	if !slot.End.Equal(wantStart.Add(time.Hour)) {
		t.Errorf("fallback end = %v, want %v", slot.End, wantStart.Add(time.Hour))
	}
}

func TestScheduler_Schedule_EmptyTaskList(t *testing.T) {
	scheduler := newTestScheduler()

	slots := scheduler.Schedule(context.Background(), nil, testutil.MondayWeekStart(), nil)

	if len(slots) != 0 {
		t.Errorf("Schedule() returned %d slots, want 0", len(slots))
	}
}

func TestScheduler_Schedule_DoesNotMutateInput(t *testing.T) {
	scheduler := newTestScheduler()
	weekStart := testutil.MondayWeekStart()

	tasks := []domain.Task{
		{ID: "undated", Title: "task undated", DurationMinutes: 60, Priority: domain.PriorityLow},
		testutil.NewTaskWithDeadline("dated", 60, weekStart.AddDate(0, 0, 1), domain.PriorityHigh),
	}

	scheduler.Schedule(context.Background(), tasks, weekStart, nil)

	if tasks[0].ID != "undated" || tasks[1].ID != "dated" {
		t.Error("Schedule() reordered the caller's task slice")
	}
}
