package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
	"github.com/studyflowapp/studyflow-scheduling/internal/infra/calendarsync"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/icsexport"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/planner"
)

type ScheduleHandler struct {
	planService  *planner.Service
	scheduleRepo domain.ScheduleRepository
	syncer       calendarsync.Syncer
}

// NewScheduleHandler wires the schedule endpoints. scheduleRepo and
// syncer may be nil; persistence and calendar push are then skipped.
func NewScheduleHandler(
	planService *planner.Service,
	scheduleRepo domain.ScheduleRepository,
	syncer calendarsync.Syncer,
) *ScheduleHandler {
	return &ScheduleHandler{
		planService:  planService,
		scheduleRepo: scheduleRepo,
		syncer:       syncer,
	}
}

// HandleSchedule plans a week, stores the plan, and pushes the events
// to the calendar collaborator. A sync failure degrades the response
// (syncResult is null) but never fails the scheduling itself.
func (h *ScheduleHandler) HandleSchedule(c *gin.Context) {
	ctx := c.Request.Context()

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result := h.planService.PlanSchedule(ctx, req.domainTasks(), req.WeekStart, req.domainEvents())

	weekKey := domain.WeekKey(req.WeekStart)

	if h.scheduleRepo != nil {
		plan := domain.NewSchedulePlan(weekKey, result.Events, result.MeanConfidence, result.Source)
		if err := h.scheduleRepo.SavePlan(ctx, plan); err != nil {
			slog.WarnContext(ctx, "failed to persist schedule plan",
				slog.String("week_key", weekKey),
				slog.String("error", err.Error()),
			)
		}
	}

	var syncResult *calendarsync.SyncResult
	if h.syncer != nil {
		pushed, err := h.syncer.UpsertEvents(ctx, result.Events)
		if err != nil {
			slog.WarnContext(ctx, "calendar sync failed",
				slog.String("week_key", weekKey),
				slog.String("error", err.Error()),
			)
		} else {
			syncResult = pushed
			if h.scheduleRepo != nil {
				record := domain.NewSyncRecord(weekKey, pushed.Synced, pushed.IDs)
				if err := h.scheduleRepo.SaveSyncRecord(ctx, record); err != nil {
					slog.WarnContext(ctx, "failed to persist sync record",
						slog.String("week_key", weekKey),
						slog.String("error", err.Error()),
					)
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"weekKey":    weekKey,
		"events":     result.Events,
		"source":     result.Source,
		"syncResult": syncResult,
	})
}

// HandleSchedulePreview runs the orchestrator without persistence or
// calendar push, for deterministic inspection of a would-be plan.
func (h *ScheduleHandler) HandleSchedulePreview(c *gin.Context) {
	ctx := c.Request.Context()

	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	result := h.planService.PlanSchedule(ctx, req.domainTasks(), req.WeekStart, req.domainEvents())
	c.JSON(http.StatusOK, result)
}

// HandleGetWeek returns a stored plan.
func (h *ScheduleHandler) HandleGetWeek(c *gin.Context) {
	ctx := c.Request.Context()
	weekKey := c.Param("week")

	if h.scheduleRepo == nil {
		respondError(c, http.StatusNotFound, "not_found", "plan storage is not configured")
		return
	}

	plan, err := h.scheduleRepo.GetPlan(ctx, weekKey)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "no plan stored for week "+weekKey)
			return
		}
		slog.ErrorContext(ctx, "failed to load schedule plan",
			slog.String("week_key", weekKey),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to load plan")
		return
	}

	c.JSON(http.StatusOK, plan)
}

// HandleExportICS serves a stored plan as an ICS feed.
func (h *ScheduleHandler) HandleExportICS(c *gin.Context) {
	ctx := c.Request.Context()
	weekKey := c.Param("week")

	if h.scheduleRepo == nil {
		respondError(c, http.StatusNotFound, "not_found", "plan storage is not configured")
		return
	}

	plan, err := h.scheduleRepo.GetPlan(ctx, weekKey)
	if err != nil {
		if errors.Is(err, domain.ErrPlanNotFound) {
			respondError(c, http.StatusNotFound, "not_found", "no plan stored for week "+weekKey)
			return
		}
		slog.ErrorContext(ctx, "failed to load schedule plan for export",
			slog.String("week_key", weekKey),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "storage_error", "failed to load plan")
		return
	}

	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(icsexport.Export(plan)))
}
