package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
	"github.com/studyflowapp/studyflow-scheduling/internal/infra/calendarsync"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/heuristic"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/planner"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/slotfinder"
	"github.com/studyflowapp/studyflow-scheduling/internal/testutil"
)

func newTestPlanService() *planner.Service {
	scheduler := heuristic.NewScheduler(slotfinder.NewFinder(9, 17), 17, nil)
	return planner.NewService(scheduler, nil, "", 0.8, nil, nil)
}

func newScheduleRouter(h *ScheduleHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/schedule", h.HandleSchedule)
	r.POST("/api/v1/schedule/preview", h.HandleSchedulePreview)
	r.GET("/api/v1/schedule/:week", h.HandleGetWeek)
	r.GET("/api/v1/schedule/:week/ics", h.HandleExportICS)
	return r
}

func scheduleBody(t *testing.T, weekStart time.Time) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"tasks": []map[string]any{
			{"id": "t1", "title": "Write essay", "durationMinutes": 60, "priority": "high"},
		},
		"weekStart": weekStart.Format(time.RFC3339),
	})
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	return bytes.NewBuffer(body)
}

func TestHandleSchedule_PersistsAndSyncs(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockScheduleRepository(ctrl)
	syncer := calendarsync.NewMockSyncer(ctrl)

	weekStart := testutil.MondayWeekStart()
	weekKey := domain.WeekKey(weekStart)

	repo.EXPECT().SavePlan(gomock.Any(), gomock.Any()).Return(nil)
	syncer.EXPECT().UpsertEvents(gomock.Any(), gomock.Any()).
		Return(&calendarsync.SyncResult{Synced: 1, IDs: []string{"t1"}}, nil)
	repo.EXPECT().SaveSyncRecord(gomock.Any(), gomock.Any()).Return(nil)

	router := newScheduleRouter(NewScheduleHandler(newTestPlanService(), repo, syncer))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", scheduleBody(t, weekStart))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp struct {
		OK         bool                     `json:"ok"`
		WeekKey    string                   `json:"weekKey"`
		Events     []map[string]any         `json:"events"`
		SyncResult *calendarsync.SyncResult `json:"syncResult"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.OK {
		t.Error("ok = false, want true")
	}
	if resp.WeekKey != weekKey {
		t.Errorf("weekKey = %q, want %q", resp.WeekKey, weekKey)
	}
	if len(resp.Events) != 1 {
		t.Errorf("returned %d events, want 1", len(resp.Events))
	}
	if resp.SyncResult == nil || resp.SyncResult.Synced != 1 {
		t.Errorf("syncResult = %+v, want one synced event", resp.SyncResult)
	}
}

func TestHandleSchedule_SyncFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockScheduleRepository(ctrl)
	syncer := calendarsync.NewMockSyncer(ctrl)

	repo.EXPECT().SavePlan(gomock.Any(), gomock.Any()).Return(nil)
	syncer.EXPECT().UpsertEvents(gomock.Any(), gomock.Any()).
		Return(nil, context.DeadlineExceeded)

	router := newScheduleRouter(NewScheduleHandler(newTestPlanService(), repo, syncer))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", scheduleBody(t, testutil.MondayWeekStart()))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d after sync failure", w.Code, http.StatusOK)
	}

	var resp struct {
		SyncResult *calendarsync.SyncResult `json:"syncResult"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SyncResult != nil {
		t.Errorf("syncResult = %+v, want null when sync fails", resp.SyncResult)
	}
}

func TestHandleSchedule_ValidationErrors(t *testing.T) {
	router := newScheduleRouter(NewScheduleHandler(newTestPlanService(), nil, nil))

	tests := []struct {
		name string
		body string
	}{
		{"empty tasks", `{"tasks": [], "weekStart": "2026-03-02T00:00:00Z"}`},
		{"missing week start", `{"tasks": [{"id": "t1", "durationMinutes": 60}]}`},
		{"zero duration", `{"tasks": [{"id": "t1", "durationMinutes": 0}], "weekStart": "2026-03-02T00:00:00Z"}`},
		{"unknown priority", `{"tasks": [{"id": "t1", "durationMinutes": 60, "priority": "urgent"}], "weekStart": "2026-03-02T00:00:00Z"}`},
		{"not json", `plan my week please`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestHandleSchedulePreview_NoPersistence(t *testing.T) {
	// nil repo and syncer: preview must not touch either.
	router := newScheduleRouter(NewScheduleHandler(newTestPlanService(), nil, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/preview", scheduleBody(t, testutil.MondayWeekStart()))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp planner.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Errorf("returned %d events, want 1", len(resp.Events))
	}
	if resp.Source != planner.SourceHeuristic {
		t.Errorf("source = %q, want %q", resp.Source, planner.SourceHeuristic)
	}
}

func TestHandleGetWeek_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockScheduleRepository(ctrl)
	repo.EXPECT().GetPlan(gomock.Any(), "2026-03-02").Return(nil, domain.ErrPlanNotFound)

	router := newScheduleRouter(NewScheduleHandler(newTestPlanService(), repo, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/2026-03-02", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestHandleExportICS(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockScheduleRepository(ctrl)

	weekStart := testutil.MondayWeekStart()
	plan := domain.NewSchedulePlan("2026-03-02", []domain.CalendarEvent{
		{
			ID:     "t1",
			Title:  "Write essay",
			Start:  weekStart.Add(9 * time.Hour),
			End:    weekStart.Add(10 * time.Hour),
			Status: domain.EventStatusTentative,
		},
	}, 0.9, planner.SourceHeuristic)

	repo.EXPECT().GetPlan(gomock.Any(), "2026-03-02").Return(plan, nil)

	router := newScheduleRouter(NewScheduleHandler(newTestPlanService(), repo, nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/schedule/2026-03-02/ics", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Errorf("content type = %q, want text/calendar", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("response is not an ICS document")
	}
	if !strings.Contains(body, "Write essay") {
		t.Error("ICS output is missing the event summary")
	}
}
