package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
	"github.com/studyflowapp/studyflow-scheduling/internal/observability/tracing"
)

const (
	planKeyPrefix = "schedule:plan:"
	syncKeyPrefix = "schedule:sync:"

	// Plans are week-scoped working state, not archival storage; they
	// expire once the planned week is long past.
	planTTL = 21 * 24 * time.Hour
	syncTTL = 21 * 24 * time.Hour
)

type planRecord struct {
	WeekKey        string        `json:"week_key"`
	Events         []eventRecord `json:"events"`
	MeanConfidence float64       `json:"mean_confidence"`
	Source         string        `json:"source"`
	PlannedAt      time.Time     `json:"planned_at"`
	TotalPlanned   int           `json:"total_planned"`
}

type eventRecord struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

type syncRecord struct {
	WeekKey  string    `json:"week_key"`
	Synced   int       `json:"synced"`
	EventIDs []string  `json:"event_ids"`
	SyncedAt time.Time `json:"synced_at"`
}

type scheduleRepository struct {
	client *redis.Client
}

func NewScheduleRepository(client *redis.Client) domain.ScheduleRepository {
	return &scheduleRepository{
		client: client,
	}
}

func (r *scheduleRepository) SavePlan(ctx context.Context, plan *domain.SchedulePlan) error {
	if plan == nil || plan.WeekKey == "" {
		return ErrInvalidPlanData
	}

	key := planKeyPrefix + plan.WeekKey

	ctx, span := tracing.StartRedisOperationSpan(ctx, "save_plan", key)
	defer span.End()

	events := make([]eventRecord, 0, len(plan.Events))
	for _, event := range plan.Events {
		events = append(events, eventRecord{
			ID:     event.ID,
			Title:  event.Title,
			Start:  event.Start,
			End:    event.End,
			Status: event.Status.String(),
		})
	}

	record := planRecord{
		WeekKey:        plan.WeekKey,
		Events:         events,
		MeanConfidence: plan.MeanConfidence,
		Source:         plan.Source,
		PlannedAt:      plan.PlannedAt,
		TotalPlanned:   plan.TotalPlanned,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return ErrInvalidPlanData
	}

	return r.client.Set(ctx, key, data, planTTL).Err()
}

func (r *scheduleRepository) GetPlan(ctx context.Context, weekKey string) (*domain.SchedulePlan, error) {
	key := planKeyPrefix + weekKey

	ctx, span := tracing.StartRedisOperationSpan(ctx, "get_plan", key)
	defer span.End()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}

	var record planRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidPlanData
	}

	events := make([]domain.CalendarEvent, 0, len(record.Events))
	for _, event := range record.Events {
		events = append(events, domain.CalendarEvent{
			ID:     event.ID,
			Title:  event.Title,
			Start:  event.Start,
			End:    event.End,
			Status: domain.EventStatus(event.Status),
		})
	}

	return &domain.SchedulePlan{
		WeekKey:        record.WeekKey,
		Events:         events,
		MeanConfidence: record.MeanConfidence,
		Source:         record.Source,
		PlannedAt:      record.PlannedAt,
		TotalPlanned:   record.TotalPlanned,
	}, nil
}

func (r *scheduleRepository) DeletePlan(ctx context.Context, weekKey string) error {
	key := planKeyPrefix + weekKey

	ctx, span := tracing.StartRedisOperationSpan(ctx, "delete_plan", key)
	defer span.End()

	return r.client.Del(ctx, key).Err()
}

func (r *scheduleRepository) SaveSyncRecord(ctx context.Context, record *domain.SyncRecord) error {
	if record == nil || record.WeekKey == "" {
		return ErrInvalidSyncData
	}

	key := syncKeyPrefix + record.WeekKey

	ctx, span := tracing.StartRedisOperationSpan(ctx, "save_sync", key)
	defer span.End()

	data, err := json.Marshal(syncRecord{
		WeekKey:  record.WeekKey,
		Synced:   record.Synced,
		EventIDs: record.EventIDs,
		SyncedAt: record.SyncedAt,
	})
	if err != nil {
		return ErrInvalidSyncData
	}

	return r.client.Set(ctx, key, data, syncTTL).Err()
}

func (r *scheduleRepository) GetSyncRecord(ctx context.Context, weekKey string) (*domain.SyncRecord, error) {
	key := syncKeyPrefix + weekKey

	ctx, span := tracing.StartRedisOperationSpan(ctx, "get_sync", key)
	defer span.End()

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSyncRecordMissing
		}
		return nil, err
	}

	var record syncRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidSyncData
	}

	return &domain.SyncRecord{
		WeekKey:  record.WeekKey,
		Synced:   record.Synced,
		EventIDs: record.EventIDs,
		SyncedAt: record.SyncedAt,
	}, nil
}
