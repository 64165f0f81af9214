package planner

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
	"github.com/studyflowapp/studyflow-scheduling/internal/infra/aiclient"
	"github.com/studyflowapp/studyflow-scheduling/internal/observability/metrics"
	"github.com/studyflowapp/studyflow-scheduling/internal/observability/tracing"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/heuristic"
)

const unknownTaskTitle = "Scheduled task"

// Service orchestrates a scheduling run: heuristic placement first,
// then optional escalation to the external optimizer when confidence is
// low, with a deterministic fallback to the heuristic result on any
// optimizer failure. PlanSchedule always returns a complete event list
// for well-formed input; degradation is logged, never surfaced.
type Service struct {
	scheduler           *heuristic.Scheduler
	generator           aiclient.Generator
	optimizerModel      string
	confidenceThreshold float64
	resultRecorder      domain.ScheduleResultRecorder
	scheduleMetrics     *metrics.ScheduleMetrics
}

// NewService wires the orchestrator. generator may be nil: escalation
// is then impossible and every run stays fully local.
func NewService(
	scheduler *heuristic.Scheduler,
	generator aiclient.Generator,
	optimizerModel string,
	confidenceThreshold float64,
	resultRecorder domain.ScheduleResultRecorder,
	scheduleMetrics *metrics.ScheduleMetrics,
) *Service {
	return &Service{
		scheduler:           scheduler,
		generator:           generator,
		optimizerModel:      optimizerModel,
		confidenceThreshold: confidenceThreshold,
		resultRecorder:      resultRecorder,
		scheduleMetrics:     scheduleMetrics,
	}
}

// PlanSchedule runs the full pipeline for one week.
func (s *Service) PlanSchedule(
	ctx context.Context,
	tasks []domain.Task,
	weekStart time.Time,
	existingEvents []domain.CalendarEvent,
) *Response {
	runStart := time.Now()

	ctx, span := tracing.StartPlanningSpan(ctx, weekStart, len(tasks), len(existingEvents))
	defer span.End()

	occupied := make([]domain.Interval, 0, len(existingEvents))
	for _, event := range existingEvents {
		occupied = append(occupied, event.Interval())
	}

	heuristicCtx, heuristicSpan := tracing.StartHeuristicSpan(ctx, len(tasks))
	slots := s.scheduler.Schedule(heuristicCtx, tasks, weekStart, occupied)
	heuristicSpan.End()

	meanConfidence := heuristic.MeanConfidence(slots)
	fallbackCount := 0
	for _, slot := range slots {
		if slot.IsFallback() {
			fallbackCount++
		}
	}

	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordMeanConfidence(ctx, meanConfidence)
	}

	titleByTaskID := make(map[string]string, len(tasks))
	for _, task := range tasks {
		titleByTaskID[task.ID] = task.Title
	}

	resp := &Response{
		MeanConfidence: meanConfidence,
		FallbackCount:  fallbackCount,
		Source:         SourceHeuristic,
	}

	if meanConfidence >= s.confidenceThreshold || s.generator == nil {
		resp.Events = projectSlots(slots, titleByTaskID)

		slog.DebugContext(ctx, "heuristic schedule accepted",
			slog.Float64("mean_confidence", meanConfidence),
			slog.Float64("threshold", s.confidenceThreshold),
			slog.Bool("optimizer_configured", s.generator != nil),
		)
	} else {
		resp.Escalated = true

		events, ok := s.optimizeSchedule(ctx, tasks, weekStart, len(existingEvents), meanConfidence, titleByTaskID)
		if ok {
			resp.Events = events
			resp.Source = SourceOptimizer
		} else {
			// Optimizer enhancement is strictly best effort: any failure
			// degrades to the already-computed heuristic result.
			resp.Events = projectSlots(slots, titleByTaskID)
		}
	}

	duration := time.Since(runStart)
	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordSchedulingDuration(ctx, duration)
	}
	tracing.RecordPlanningResult(span, len(slots)-fallbackCount, fallbackCount, meanConfidence, resp.Source)

	s.recordRun(ctx, domain.ScheduleRunRecord{
		RunID:          uuid.NewString(),
		WeekStart:      weekStart,
		TaskCount:      len(tasks),
		ExistingEvents: len(existingEvents),
		PlacedCount:    len(slots) - fallbackCount,
		FallbackCount:  fallbackCount,
		MeanConfidence: meanConfidence,
		Escalated:      resp.Escalated,
		Source:         resp.Source,
		Duration:       duration,
	})

	slog.InfoContext(ctx, "scheduling run completed",
		slog.Int("task_count", len(tasks)),
		slog.Int("fallback_count", fallbackCount),
		slog.Float64("mean_confidence", meanConfidence),
		slog.Bool("escalated", resp.Escalated),
		slog.String("source", resp.Source),
	)

	return resp
}

// optimizeSchedule delegates to the external optimizer and maps its
// proposals back to calendar events. Returns ok=false on any failure.
func (s *Service) optimizeSchedule(
	ctx context.Context,
	tasks []domain.Task,
	weekStart time.Time,
	existingEvents int,
	meanConfidence float64,
	titleByTaskID map[string]string,
) ([]domain.CalendarEvent, bool) {
	prompt := buildOptimizerPrompt(tasks, weekStart, existingEvents, meanConfidence)

	optimizerCtx, optimizerSpan := tracing.StartOptimizerSpan(ctx, s.optimizerModel)
	defer optimizerSpan.End()

	callStart := time.Now()
	text, err := s.generator.GenerateText(optimizerCtx, prompt)
	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordOptimizerDuration(ctx, time.Since(callStart))
	}

	if err != nil {
		tracing.RecordOptimizerResult(optimizerSpan, 0, err)
		if s.scheduleMetrics != nil {
			s.scheduleMetrics.RecordEscalation(ctx, "call_failed")
		}
		slog.WarnContext(ctx, "optimizer call failed, falling back to heuristic schedule",
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	proposals, err := ExtractSlotProposals(text)
	if err != nil {
		tracing.RecordOptimizerResult(optimizerSpan, 0, err)
		if s.scheduleMetrics != nil {
			s.scheduleMetrics.RecordEscalation(ctx, "parse_failed")
		}
		slog.WarnContext(ctx, "failed to extract slot proposals, falling back to heuristic schedule",
			slog.String("error", err.Error()),
		)
		return nil, false
	}

	tracing.RecordOptimizerResult(optimizerSpan, len(proposals), nil)
	if s.scheduleMetrics != nil {
		s.scheduleMetrics.RecordEscalation(ctx, "success")
	}

	events := make([]domain.CalendarEvent, 0, len(proposals))
	for _, proposal := range proposals {
		title, known := titleByTaskID[proposal.TaskID]
		if !known {
			title = unknownTaskTitle
		}
		events = append(events, domain.CalendarEvent{
			ID:     proposal.TaskID,
			Title:  title,
			Start:  proposal.Start,
			End:    proposal.End,
			Status: domain.EventStatusTentative,
		})
	}

	return events, true
}

// projectSlots turns placed slots into tentative calendar events using
// the owning task's title.
func projectSlots(slots []domain.PlacedSlot, titleByTaskID map[string]string) []domain.CalendarEvent {
	events := make([]domain.CalendarEvent, 0, len(slots))
	for _, slot := range slots {
		title, known := titleByTaskID[slot.TaskID]
		if !known {
			title = unknownTaskTitle
		}
		events = append(events, domain.CalendarEvent{
			ID:     slot.TaskID,
			Title:  title,
			Start:  slot.Start,
			End:    slot.End,
			Status: domain.EventStatusTentative,
		})
	}
	return events
}

func (s *Service) recordRun(ctx context.Context, record domain.ScheduleRunRecord) {
	if s.resultRecorder == nil {
		return
	}
	if err := s.resultRecorder.RecordRun(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record scheduling run",
			slog.String("run_id", record.RunID),
			slog.String("error", err.Error()),
		)
	}
}
