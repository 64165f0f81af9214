package domain

import "context"

//go:generate mockgen -source=schedule_repository.go -destination=schedule_repository_mock.go -package=domain

// ScheduleRepository persists finished plans and sync outcomes between
// scheduling runs. The scheduling core itself never touches it.
type ScheduleRepository interface {
	SavePlan(ctx context.Context, plan *SchedulePlan) error
	GetPlan(ctx context.Context, weekKey string) (*SchedulePlan, error)
	DeletePlan(ctx context.Context, weekKey string) error
	SaveSyncRecord(ctx context.Context, record *SyncRecord) error
	GetSyncRecord(ctx context.Context, weekKey string) (*SyncRecord, error)
}
