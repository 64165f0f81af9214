package handler

import (
	"fmt"
	"time"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
)

// The wire shapes use the same camelCase fields as the web client.

type taskPayload struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	DurationMinutes int        `json:"durationMinutes"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Priority        string     `json:"priority"`
}

type eventPayload struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
}

type scheduleRequest struct {
	Tasks          []taskPayload  `json:"tasks"`
	WeekStart      time.Time      `json:"weekStart"`
	ExistingEvents []eventPayload `json:"existingEvents"`
}

// validate enforces the input taxonomy at the boundary so the core can
// assume well-formed tasks.
func (r *scheduleRequest) validate() error {
	if len(r.Tasks) == 0 {
		return fmt.Errorf("provide tasks as a non-empty array of {id, title, durationMinutes}")
	}
	if r.WeekStart.IsZero() {
		return fmt.Errorf("weekStart is required as an RFC3339 timestamp")
	}
	for i, task := range r.Tasks {
		if task.ID == "" {
			return fmt.Errorf("task %d is missing an id", i)
		}
		if task.DurationMinutes <= 0 {
			return fmt.Errorf("task %q must have a positive durationMinutes", task.ID)
		}
		if task.Priority != "" && !domain.Priority(task.Priority).IsValid() {
			return fmt.Errorf("task %q has unknown priority %q", task.ID, task.Priority)
		}
	}
	return nil
}

func (r *scheduleRequest) domainTasks() []domain.Task {
	tasks := make([]domain.Task, 0, len(r.Tasks))
	for _, task := range r.Tasks {
		priority := domain.Priority(task.Priority)
		if task.Priority == "" {
			priority = domain.PriorityMedium
		}
		tasks = append(tasks, domain.Task{
			ID:              task.ID,
			Title:           task.Title,
			DurationMinutes: task.DurationMinutes,
			Deadline:        task.Deadline,
			Priority:        priority,
		})
	}
	return tasks
}

func (r *scheduleRequest) domainEvents() []domain.CalendarEvent {
	events := make([]domain.CalendarEvent, 0, len(r.ExistingEvents))
	for _, event := range r.ExistingEvents {
		events = append(events, domain.CalendarEvent{
			ID:     event.ID,
			Title:  event.Title,
			Start:  event.Start,
			End:    event.End,
			Status: domain.EventStatus(event.Status),
		})
	}
	return events
}

type suggestRequest struct {
	Task           taskPayload    `json:"task"`
	Now            *time.Time     `json:"now,omitempty"`
	ExistingEvents []eventPayload `json:"existingEvents"`
}

func (r *suggestRequest) validate() error {
	if r.Task.ID == "" {
		return fmt.Errorf("task.id is required")
	}
	if r.Task.DurationMinutes <= 0 {
		return fmt.Errorf("task %q must have a positive durationMinutes", r.Task.ID)
	}
	if r.Task.Priority != "" && !domain.Priority(r.Task.Priority).IsValid() {
		return fmt.Errorf("task %q has unknown priority %q", r.Task.ID, r.Task.Priority)
	}
	return nil
}

type suggestResponse struct {
	Found bool       `json:"found"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}
