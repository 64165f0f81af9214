package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyflowapp/studyflow-scheduling/internal/service/extractor"
)

var allowedUploadTypes = map[string]struct{}{
	"application/pdf": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"application/msword": {},
	"image/png":          {},
	"image/jpeg":         {},
	"image/jpg":          {},
	"image/webp":         {},
}

type ExtractHandler struct {
	extractService *extractor.Service
	maxUploadBytes int64
}

func NewExtractHandler(extractService *extractor.Service, maxUploadBytes int64) *ExtractHandler {
	return &ExtractHandler{
		extractService: extractService,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleExtract accepts a multipart document upload and returns the
// assignments the extraction collaborator found in it.
func (h *ExtractHandler) HandleExtract(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "a multipart field named 'file' is required")
		return
	}
	if fileHeader.Size > h.maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file exceeds the size limit")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if _, ok := allowedUploadTypes[mimeType]; !ok {
		respondError(c, http.StatusBadRequest, "unsupported_type", "unsupported file type "+mimeType)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "failed to open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "failed to read uploaded file")
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		respondError(c, http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file exceeds the size limit")
		return
	}

	slog.InfoContext(ctx, "extracting assignments from upload",
		slog.String("mime_type", mimeType),
		slog.Int("size_bytes", len(data)),
	)

	result := h.extractService.Extract(ctx, mimeType, data)
	c.JSON(http.StatusOK, result)
}
