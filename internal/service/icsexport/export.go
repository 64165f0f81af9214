package icsexport

import (
	ical "github.com/arran4/golang-ical"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
)

const calendarProductID = "-//studyflow//scheduling//EN"

// Export renders a stored week plan as an ICS calendar so users can
// subscribe from any calendar client without going through the sync
// collaborator. Tentative events carry STATUS:TENTATIVE.
func Export(plan *domain.SchedulePlan) string {
	cal := ical.NewCalendar()
	cal.SetProductId(calendarProductID)
	cal.SetMethod(ical.MethodPublish)

	for _, event := range plan.Events {
		ve := cal.AddEvent(event.ID + "@studyflow")
		ve.SetSummary(event.Title)
		ve.SetStartAt(event.Start)
		ve.SetEndAt(event.End)
		ve.SetDtStampTime(plan.PlannedAt)
		if event.Status == domain.EventStatusConfirmed {
			ve.SetStatus(ical.ObjectStatusConfirmed)
		} else {
			ve.SetStatus(ical.ObjectStatusTentative)
		}
	}

	return cal.Serialize()
}
