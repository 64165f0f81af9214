package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/studyflowapp/studyflow-scheduling/internal/infra/aiclient"
	"github.com/studyflowapp/studyflow-scheduling/internal/service/extractor"
)

func newExtractRouter(h *ExtractHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/documents/extract", h.HandleExtract)
	return r
}

func multipartUpload(t *testing.T, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="syllabus"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write multipart data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func TestHandleExtract_ReturnsAssignments(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := aiclient.NewMockGenerator(ctrl)
	generator.EXPECT().
		GenerateFromDocument(gomock.Any(), gomock.Any(), "application/pdf", gomock.Any()).
		Return(`[{"title": "Essay on Hamlet", "deadline": "2026-03-10"}]`, nil)

	handler := NewExtractHandler(extractor.NewService(generator), 10<<20)
	router := newExtractRouter(handler)

	body, contentType := multipartUpload(t, "application/pdf", []byte("%PDF-1.4"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/extract", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}

	var result extractor.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(result.Assignments) != 1 {
		t.Fatalf("returned %d assignments, want 1", len(result.Assignments))
	}
	if result.Assignments[0].Title != "Essay on Hamlet" {
		t.Errorf("assignment title = %q, want %q", result.Assignments[0].Title, "Essay on Hamlet")
	}
}

func TestHandleExtract_RejectsUnsupportedType(t *testing.T) {
	handler := NewExtractHandler(extractor.NewService(nil), 10<<20)
	router := newExtractRouter(handler)

	body, contentType := multipartUpload(t, "application/zip", []byte("PK"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/extract", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleExtract_RejectsOversizedUpload(t *testing.T) {
	handler := NewExtractHandler(extractor.NewService(nil), 16)
	router := newExtractRouter(handler)

	body, contentType := multipartUpload(t, "application/pdf", bytes.Repeat([]byte("a"), 64))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/extract", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestHandleExtract_MissingFileField(t *testing.T) {
	handler := NewExtractHandler(extractor.NewService(nil), 10<<20)
	router := newExtractRouter(handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/extract", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
