package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
)

func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("failed to start redis container: %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, "redis:8-alpine")
	if err != nil {
		t.Skipf("failed to start redis container: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Skipf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: endpoint,
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}

		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	}

	return client, cleanup
}

// MondayWeekStart returns a fixed Monday 00:00 UTC, the anchor most
// scheduling tests plan against.
func MondayWeekStart() time.Time {
	return time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
}

// NewTask builds a task with the given duration. Deadline and priority
// default to none and medium.
func NewTask(id string, durationMinutes int) domain.Task {
	return domain.Task{
		ID:              id,
		Title:           "task " + id,
		DurationMinutes: durationMinutes,
		Priority:        domain.PriorityMedium,
	}
}

// NewTaskWithDeadline builds a task due at the given time.
func NewTaskWithDeadline(id string, durationMinutes int, deadline time.Time, priority domain.Priority) domain.Task {
	return domain.Task{
		ID:              id,
		Title:           "task " + id,
		DurationMinutes: durationMinutes,
		Deadline:        &deadline,
		Priority:        priority,
	}
}

// NewEvent builds an existing calendar event occupying [start, end).
func NewEvent(id string, start, end time.Time) domain.CalendarEvent {
	return domain.CalendarEvent{
		ID:     id,
		Title:  "event " + id,
		Start:  start,
		End:    end,
		Status: domain.EventStatusConfirmed,
	}
}
