package extractor

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"

	"github.com/studyflowapp/studyflow-scheduling/internal/infra/aiclient"
)

// extractionConfidence is attached to successful AI extractions. It is
// independent of the scheduler's own slot confidence metric.
const extractionConfidence = 0.85

const extractionPrompt = `Extract all assignment titles and their due dates from this document (syllabus, assignment sheet, or course schedule).

Return a JSON array with this structure:
[
  {
    "title": "Assignment name",
    "deadline": "YYYY-MM-DD" or "YYYY-MM-DDTHH:MM:SS" if time is specified,
    "description": "Brief description if available"
  }
]

If no clear deadline is found, omit the "deadline" field.
Return only valid JSON, no markdown formatting.`

// Assignment is one extracted syllabus entry. Deadline stays a string
// here: the document may carry date-only or datetime forms, and the
// caller decides how to interpret them when building tasks.
type Assignment struct {
	Title       string `json:"title"`
	Deadline    string `json:"deadline,omitempty"`
	Description string `json:"description,omitempty"`
}

// Result is the extraction outcome returned to the upload flow.
type Result struct {
	Assignments []Assignment `json:"assignments"`
	Confidence  float64      `json:"confidence"`
}

var fencedJSONPattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// Service extracts assignments from uploaded documents via the
// text-generation collaborator. Extraction is best effort: a missing
// credential or failed call yields an empty result, never an error.
type Service struct {
	generator aiclient.Generator
}

// NewService wires the extractor. generator may be nil when no
// credential is configured.
func NewService(generator aiclient.Generator) *Service {
	return &Service{generator: generator}
}

func (s *Service) Extract(ctx context.Context, mimeType string, data []byte) *Result {
	empty := &Result{Assignments: []Assignment{}, Confidence: 0}

	if s.generator == nil {
		slog.WarnContext(ctx, "extraction credential not configured, skipping AI extraction")
		return empty
	}

	text, err := s.generator.GenerateFromDocument(ctx, extractionPrompt, mimeType, data)
	if err != nil {
		slog.WarnContext(ctx, "assignment extraction failed",
			slog.String("mime_type", mimeType),
			slog.String("error", err.Error()),
		)
		return empty
	}

	assignments, err := parseAssignments(text)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse extracted assignments",
			slog.String("error", err.Error()),
		)
		return empty
	}

	slog.DebugContext(ctx, "assignments extracted",
		slog.Int("count", len(assignments)),
	)

	return &Result{
		Assignments: assignments,
		Confidence:  extractionConfidence,
	}
}

func parseAssignments(text string) ([]Assignment, error) {
	candidate := text
	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		candidate = strings.TrimSpace(m[1])
	} else {
		start := strings.Index(text, "[")
		end := strings.LastIndex(text, "]")
		if start >= 0 && end > start {
			candidate = text[start : end+1]
		}
	}

	var assignments []Assignment
	if err := json.Unmarshal([]byte(candidate), &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}
