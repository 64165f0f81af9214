package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
)

// buildOptimizerPrompt describes the scheduling problem to the external
// optimizer: the task list with durations, priorities and deadlines,
// the week being planned, how crowded the calendar already is, and how
// confident the local heuristic was.
func buildOptimizerPrompt(tasks []domain.Task, weekStart time.Time, existingEvents int, meanConfidence float64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a study planner. Arrange the following tasks into time slots for the week starting %s.\n", weekStart.Format(time.RFC3339))
	fmt.Fprintf(&b, "The calendar already contains %d events, and a first-pass heuristic produced a schedule with mean confidence %.2f.\n\n", existingEvents, meanConfidence)
	b.WriteString("Tasks:\n")

	for _, task := range tasks {
		fmt.Fprintf(&b, "- id=%s title=%q duration_minutes=%d priority=%s", task.ID, task.Title, task.DurationMinutes, task.Priority)
		if task.Deadline != nil {
			fmt.Fprintf(&b, " deadline=%s", task.Deadline.Format(time.RFC3339))
		}
		b.WriteString("\n")
	}

	b.WriteString(`
Constraints: slots must fall inside working hours (9:00-17:00 local time), must not overlap each other, and must end before each task's deadline when one is given.

Return a JSON array with this structure:
[
  {"taskId": "...", "start": "RFC3339 timestamp", "end": "RFC3339 timestamp"}
]

Return only valid JSON, no markdown formatting.`)

	return b.String()
}
