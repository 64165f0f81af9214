package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scheduleMeterName = "schedule.service"
)

type ScheduleMetrics struct {
	tasksPlaced        metric.Int64Counter
	fallbackSlots      metric.Int64Counter
	escalations        metric.Int64Counter
	schedulingDuration metric.Float64Histogram
	optimizerDuration  metric.Float64Histogram
	meanConfidence     metric.Float64Histogram
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	meter := otel.Meter(scheduleMeterName)

	tasksPlaced, err := meter.Int64Counter(
		"schedule_tasks_placed_total",
		metric.WithDescription("Total number of tasks placed into slots"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	fallbackSlots, err := meter.Int64Counter(
		"schedule_fallback_slots_total",
		metric.WithDescription("Total number of low-confidence fallback slots issued"),
		metric.WithUnit("{slot}"),
	)
	if err != nil {
		return nil, err
	}

	escalations, err := meter.Int64Counter(
		"schedule_escalations_total",
		metric.WithDescription("Escalations to the external optimizer, by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	schedulingDuration, err := meter.Float64Histogram(
		"schedule_run_duration_seconds",
		metric.WithDescription("End-to-end scheduling run duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	optimizerDuration, err := meter.Float64Histogram(
		"schedule_optimizer_duration_seconds",
		metric.WithDescription("Time spent waiting on the external optimizer"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
		),
	)
	if err != nil {
		return nil, err
	}

	meanConfidence, err := meter.Float64Histogram(
		"schedule_mean_confidence",
		metric.WithDescription("Mean heuristic confidence per scheduling run"),
		metric.WithUnit("1"),
		metric.WithExplicitBucketBoundaries(
			0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		tasksPlaced:        tasksPlaced,
		fallbackSlots:      fallbackSlots,
		escalations:        escalations,
		schedulingDuration: schedulingDuration,
		optimizerDuration:  optimizerDuration,
		meanConfidence:     meanConfidence,
	}, nil
}

func (m *ScheduleMetrics) RecordTaskPlaced(ctx context.Context, priority, placement string) {
	m.tasksPlaced.Add(ctx, 1, metric.WithAttributes(
		attribute.String("priority", priority),
		attribute.String("placement", placement),
	))
}

func (m *ScheduleMetrics) RecordFallbackSlot(ctx context.Context, priority string) {
	m.fallbackSlots.Add(ctx, 1, metric.WithAttributes(
		attribute.String("priority", priority),
	))
}

func (m *ScheduleMetrics) RecordEscalation(ctx context.Context, outcome string) {
	m.escalations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordSchedulingDuration(ctx context.Context, duration time.Duration) {
	m.schedulingDuration.Record(ctx, duration.Seconds())
}

func (m *ScheduleMetrics) RecordOptimizerDuration(ctx context.Context, duration time.Duration) {
	m.optimizerDuration.Record(ctx, duration.Seconds())
}

func (m *ScheduleMetrics) RecordMeanConfidence(ctx context.Context, confidence float64) {
	m.meanConfidence.Record(ctx, confidence)
}
