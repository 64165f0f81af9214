package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const scheduleTracerName = "github.com/studyflowapp/studyflow-scheduling/internal/service/planner"

func ScheduleTracer() trace.Tracer {
	return otel.Tracer(scheduleTracerName)
}

func StartPlanningSpan(ctx context.Context, weekStart time.Time, taskCount, existingEvents int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.plan",
		trace.WithAttributes(
			attribute.String("plan.week_start", weekStart.Format(time.RFC3339)),
			attribute.Int("plan.task_count", taskCount),
			attribute.Int("plan.existing_events", existingEvents),
		),
	)
}

func StartHeuristicSpan(ctx context.Context, taskCount int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.heuristic",
		trace.WithAttributes(
			attribute.Int("heuristic.task_count", taskCount),
		),
	)
}

func StartOptimizerSpan(ctx context.Context, model string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.optimizer_call",
		trace.WithAttributes(
			attribute.String("optimizer.model", model),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordPlanningResult(span trace.Span, placedCount, fallbackCount int, meanConfidence float64, source string) {
	span.SetAttributes(
		attribute.Int("plan.placed_count", placedCount),
		attribute.Int("plan.fallback_count", fallbackCount),
		attribute.Float64("plan.mean_confidence", meanConfidence),
		attribute.String("plan.source", source),
	)
	span.SetStatus(codes.Ok, "")
}

func RecordOptimizerResult(span trace.Span, proposalCount int, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	span.SetAttributes(attribute.Int("optimizer.proposal_count", proposalCount))
	span.SetStatus(codes.Ok, "")
}
