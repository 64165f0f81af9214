package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/slotfinder"
)

type SuggestHandler struct {
	suggester *slotfinder.Suggester
}

func NewSuggestHandler(suggester *slotfinder.Suggester) *SuggestHandler {
	return &SuggestHandler{suggester: suggester}
}

// HandleSuggest proposes the earliest feasible slot for a single task,
// independent of any weekly plan.
func (h *SuggestHandler) HandleSuggest(c *gin.Context) {
	ctx := c.Request.Context()

	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}

	task := domain.Task{
		ID:              req.Task.ID,
		Title:           req.Task.Title,
		DurationMinutes: req.Task.DurationMinutes,
		Deadline:        req.Task.Deadline,
		Priority:        domain.Priority(req.Task.Priority),
	}
	if req.Task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}

	occupied := make([]domain.Interval, 0, len(req.ExistingEvents))
	for _, event := range req.ExistingEvents {
		occupied = append(occupied, domain.Interval{Start: event.Start, End: event.End})
	}

	slot, found := h.suggester.SuggestSlot(ctx, task, now, occupied)
	if !found {
		c.JSON(http.StatusOK, suggestResponse{Found: false})
		return
	}

	c.JSON(http.StatusOK, suggestResponse{
		Found: true,
		Start: &slot.Start,
		End:   &slot.End,
	})
}
