package planner

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/studyflowapp/studyflow-scheduling/internal/domain"
)

var fencedJSONPattern = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// ExtractSlotProposals pulls a JSON array of slot proposals out of a
// free-form optimizer reply. Models wrap their JSON in markdown fences
// or surrounding prose; extraction tries a fenced block first, then the
// outermost bracketed substring. The result is explicit: a proposal
// list or an error, never a silent default.
func ExtractSlotProposals(text string) ([]SlotProposal, error) {
	candidate := ""

	if m := fencedJSONPattern.FindStringSubmatch(text); m != nil {
		candidate = strings.TrimSpace(m[1])
	} else {
		start := strings.Index(text, "[")
		end := strings.LastIndex(text, "]")
		if start >= 0 && end > start {
			candidate = text[start : end+1]
		}
	}

	if candidate == "" {
		return nil, domain.ErrNoProposalFound
	}

	var proposals []SlotProposal
	if err := json.Unmarshal([]byte(candidate), &proposals); err != nil {
		return nil, fmt.Errorf("failed to parse slot proposals: %w", err)
	}

	for i, p := range proposals {
		if p.TaskID == "" {
			return nil, fmt.Errorf("proposal %d is missing a task id", i)
		}
		if !p.End.After(p.Start) {
			return nil, fmt.Errorf("proposal %d has a non-positive interval", i)
		}
	}

	return proposals, nil
}
