package domain

import (
	"context"
	"time"
)

// ScheduleRunRecord summarizes one scheduling run for analytics.
type ScheduleRunRecord struct {
	RunID          string
	WeekStart      time.Time
	TaskCount      int
	ExistingEvents int
	PlacedCount    int
	FallbackCount  int
	MeanConfidence float64
	Escalated      bool
	Source         string
	Duration       time.Duration
}

// ScheduleResultRecorder records run outcomes to an analytics sink.
type ScheduleResultRecorder interface {
	RecordRun(ctx context.Context, record ScheduleRunRecord) error
	Flush(ctx context.Context) error
	Close() error
}
