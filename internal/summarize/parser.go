package summarize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
)

// Parser handles parsing and validation of LLM analysis responses.
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// analysisPayload is the JSON shape the model is prompted to return.
type analysisPayload struct {
	Summary     string   `json:"summary"`
	Decisions   []string `json:"decisions"`
	ActionItems []string `json:"action_items"`
	Owners      []string `json:"owners"`
	Risks       []string `json:"risks"`
}

// ParseAnalysis parses the JSON response from the LLM into a MeetingSummary.
// The response may be wrapped in markdown code fences. A missing or empty
// summary field is treated as a malformed response so the caller falls back
// to the heuristic path.
func (p *Parser) ParseAnalysis(content string) (*entities.MeetingSummary, error) {
	content = extractJSON(content)

	var payload analysisPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if payload.Summary == "" {
		return nil, fmt.Errorf("missing summary in response")
	}

	// The AI path must honor the same invariants as the heuristic path:
	// no duplicate owners, first-seen order preserved.
	summary := entities.NewMeetingSummary(
		payload.Summary,
		payload.Decisions,
		payload.ActionItems,
		dedup(payload.Owners),
		payload.Risks,
	)
	return summary, nil
}

// dedup removes duplicate entries preserving first-seen order.
func dedup(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}
