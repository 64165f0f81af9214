package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
	"github.com/studyflowapp/studyflow-scheduling/internal/infra/aiclient"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/heuristic"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/slotfinder"
	"github.com/studyflowapp/studyflow-scheduling/internal/testutil"
)

func newTestService(generator aiclient.Generator) *Service {
	scheduler := heuristic.NewScheduler(slotfinder.NewFinder(9, 17), 17, nil)
	return NewService(scheduler, generator, "test-model", 0.8, nil, nil)
}

// fullWeek occupies every working hour so each task falls back and the
// run's mean confidence drops below any reasonable threshold.
func fullWeek(weekStart time.Time) []domain.CalendarEvent {
	events := make([]domain.CalendarEvent, 0, 7)
	for day := 0; day < 7; day++ {
		dayStart := weekStart.AddDate(0, 0, day)
		events = append(events, testutil.NewEvent(
			"busy",
			dayStart.Add(9*time.Hour),
			dayStart.Add(17*time.Hour),
		))
	}
	return events
}

func TestPlanSchedule_HighConfidenceSkipsOptimizer(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := aiclient.NewMockGenerator(ctrl)
	// No EXPECT: any optimizer call fails the test.

	service := newTestService(generator)
	weekStart := testutil.MondayWeekStart()

	resp := service.PlanSchedule(context.Background(), []domain.Task{testutil.NewTask("t1", 60)}, weekStart, nil)

	if resp.Escalated {
		t.Error("Escalated = true, want false for a confident heuristic run")
	}
	if resp.Source != SourceHeuristic {
		t.Errorf("Source = %q, want %q", resp.Source, SourceHeuristic)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("PlanSchedule() returned %d events, want 1", len(resp.Events))
	}
	if resp.Events[0].Status != domain.EventStatusTentative {
		t.Errorf("event status = %q, want %q", resp.Events[0].Status, domain.EventStatusTentative)
	}
}

func TestPlanSchedule_NilGeneratorNeverEscalates(t *testing.T) {
	service := newTestService(nil)
	weekStart := testutil.MondayWeekStart()

	resp := service.PlanSchedule(
		context.Background(),
		[]domain.Task{testutil.NewTask("t1", 60)},
		weekStart,
		fullWeek(weekStart),
	)

	if resp.Escalated {
		t.Error("Escalated = true, want false without an optimizer")
	}
	if resp.Source != SourceHeuristic {
		t.Errorf("Source = %q, want %q", resp.Source, SourceHeuristic)
	}
	if resp.FallbackCount != 1 {
		t.Errorf("FallbackCount = %d, want 1", resp.FallbackCount)
	}
}

func TestPlanSchedule_LowConfidenceUsesOptimizer(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := aiclient.NewMockGenerator(ctrl)

	weekStart := testutil.MondayWeekStart()
	optimizedStart := weekStart.Add(18 * time.Hour)
	reply := "```json\n[{\"taskId\": \"t1\", \"start\": \"" +
		optimizedStart.Format(time.RFC3339) + "\", \"end\": \"" +
		optimizedStart.Add(time.Hour).Format(time.RFC3339) + "\"}]\n```"

	generator.EXPECT().
		GenerateText(gomock.Any(), gomock.Any()).
		Return(reply, nil)

	service := newTestService(generator)

	task := testutil.NewTask("t1", 60)
	task.Title = "Write essay"

	resp := service.PlanSchedule(context.Background(), []domain.Task{task}, weekStart, fullWeek(weekStart))

	if !resp.Escalated {
		t.Error("Escalated = false, want true for a low-confidence run")
	}
	if resp.Source != SourceOptimizer {
		t.Errorf("Source = %q, want %q", resp.Source, SourceOptimizer)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("PlanSchedule() returned %d events, want 1", len(resp.Events))
	}
	event := resp.Events[0]
	if !event.Start.Equal(optimizedStart) {
		t.Errorf("event start = %v, want optimizer proposal %v", event.Start, optimizedStart)
	}
	if event.Title != "Write essay" {
		t.Errorf("event title = %q, want the task title", event.Title)
	}
	if event.Status != domain.EventStatusTentative {
		t.Errorf("event status = %q, want %q", event.Status, domain.EventStatusTentative)
	}
}

func TestPlanSchedule_OptimizerFailureFallsBackToHeuristic(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := aiclient.NewMockGenerator(ctrl)
	generator.EXPECT().
		GenerateText(gomock.Any(), gomock.Any()).
		Return("", errors.New("upstream timeout"))

	service := newTestService(generator)
	weekStart := testutil.MondayWeekStart()

	resp := service.PlanSchedule(
		context.Background(),
		[]domain.Task{testutil.NewTask("t1", 60)},
		weekStart,
		fullWeek(weekStart),
	)

	if !resp.Escalated {
		t.Error("Escalated = false, want true")
	}
	if resp.Source != SourceHeuristic {
		t.Errorf("Source = %q, want %q after optimizer failure", resp.Source, SourceHeuristic)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("PlanSchedule() returned %d events, want 1", len(resp.Events))
	}
	wantStart := weekStart.Add(17 * time.Hour)
	if !resp.Events[0].Start.Equal(wantStart) {
		t.Errorf("event start = %v, want heuristic fallback anchor %v", resp.Events[0].Start, wantStart)
	}
}

func TestPlanSchedule_UnparseableOptimizerReplyFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := aiclient.NewMockGenerator(ctrl)
	generator.EXPECT().
		GenerateText(gomock.Any(), gomock.Any()).
		Return("I am unable to produce a schedule.", nil)

	service := newTestService(generator)
	weekStart := testutil.MondayWeekStart()

	resp := service.PlanSchedule(
		context.Background(),
		[]domain.Task{testutil.NewTask("t1", 60)},
		weekStart,
		fullWeek(weekStart),
	)

	if resp.Source != SourceHeuristic {
		t.Errorf("Source = %q, want %q after a parse failure", resp.Source, SourceHeuristic)
	}
	if len(resp.Events) != 1 {
		t.Errorf("PlanSchedule() returned %d events, want 1", len(resp.Events))
	}
}

func TestPlanSchedule_UnknownProposalTaskGetsPlaceholderTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := aiclient.NewMockGenerator(ctrl)

	weekStart := testutil.MondayWeekStart()
	reply := "[{\"taskId\": \"ghost\", \"start\": \"" +
		weekStart.Add(18*time.Hour).Format(time.RFC3339) + "\", \"end\": \"" +
		weekStart.Add(19*time.Hour).Format(time.RFC3339) + "\"}]"

	generator.EXPECT().
		GenerateText(gomock.Any(), gomock.Any()).
		Return(reply, nil)

	service := newTestService(generator)

	resp := service.PlanSchedule(
		context.Background(),
		[]domain.Task{testutil.NewTask("t1", 60)},
		weekStart,
		fullWeek(weekStart),
	)

	if len(resp.Events) != 1 {
		t.Fatalf("PlanSchedule() returned %d events, want 1", len(resp.Events))
	}
	if resp.Events[0].Title != unknownTaskTitle {
		t.Errorf("event title = %q, want %q", resp.Events[0].Title, unknownTaskTitle)
	}
}

func TestPlanSchedule_EmptyTasksYieldEmptyPlan(t *testing.T) {
	service := newTestService(nil)

	resp := service.PlanSchedule(context.Background(), nil, testutil.MondayWeekStart(), nil)

	if len(resp.Events) != 0 {
		t.Errorf("PlanSchedule() returned %d events, want 0", len(resp.Events))
	}
	if resp.MeanConfidence != 0 {
		t.Errorf("MeanConfidence = %v, want 0", resp.MeanConfidence)
	}
}
