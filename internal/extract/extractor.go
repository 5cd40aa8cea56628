// Package extract implements deterministic, pattern-based recovery of
// structured meeting facts (decisions, action items, owners, risks and a
// synthesized summary) from free-text transcripts. It performs no I/O and
// never fails: any input, however malformed, yields a structurally valid
// MeetingSummary. That contract is what makes it usable as the guaranteed
// fallback behind the AI summarization path.
package extract

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
)

const (
	markerDecision = "decision:"
	markerAction   = "action:"
	markerRisk     = "risk:"

	minOwnerLen = 2
	maxOwnerLen = 20

	summaryTopicLimit = 160
)

// nonNames are capitalized-looking tokens that precede "will" in ordinary
// prose but are not person names. Comparison is against the lowercased
// candidate.
var nonNames = map[string]struct{}{
	"we": {}, "i": {}, "you": {}, "they": {}, "it": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"team": {}, "system": {}, "service": {}, "project": {}, "company": {}, "organization": {},
	"department": {}, "group": {}, "meeting": {}, "session": {}, "discussion": {},
	"process": {}, "method": {}, "approach": {}, "strategy": {}, "plan": {},
	"implementation": {}, "development": {}, "testing": {}, "deployment": {},
	"infrastructure": {}, "architecture": {}, "design": {}, "code": {}, "database": {},
	"api": {}, "interface": {}, "framework": {}, "library": {}, "module": {},
	"function": {}, "class": {}, "object": {}, "variable": {}, "parameter": {},
	"security": {}, "authentication": {}, "authorization": {}, "encryption": {},
	"performance": {}, "scalability": {}, "reliability": {}, "monitoring": {},
}

// Extract analyzes a transcript and returns the structured summary. It is a
// pure function: the same input always produces the same result, and no
// input can make it return an error.
func Extract(transcript string) *entities.MeetingSummary {
	var (
		decisions   []string
		actionItems []string
		owners      []string
		risks       []string
	)
	seenOwners := make(map[string]struct{})

	lines := splitLines(transcript)
	nonBlank := 0
	topic := ""

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		nonBlank++

		category, remainder := classify(line)
		switch category {
		case markerDecision:
			if remainder != "" {
				decisions = append(decisions, remainder)
			}
		case markerAction:
			if remainder != "" {
				actionItems = append(actionItems, remainder)
			}
		case markerRisk:
			if remainder != "" {
				risks = append(risks, remainder)
			}
		default:
			if topic == "" {
				topic = line
			}
		}

		// Owner inference runs on every line, classified or not: action
		// items like "Sarah will update the documentation" carry their
		// owner inline.
		for _, name := range ownerCandidates(line) {
			if _, dup := seenOwners[name]; dup {
				continue
			}
			seenOwners[name] = struct{}{}
			owners = append(owners, name)
		}
	}

	summary := synthesize(topic, nonBlank, len(decisions), len(actionItems), len(risks))

	return entities.NewMeetingSummary(summary, decisions, actionItems, owners, risks)
}

// splitLines splits on any newline convention (\n, \r\n, \r).
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// classify matches a trimmed line against the known markers, first match
// wins so a line never lands in two categories. Markers must anchor the
// line; the only thing allowed before one is a single speaker-name token
// ("Sarah: Decision: ..."). Mid-line occurrences never match.
func classify(line string) (category, remainder string) {
	if cat, rem, ok := matchMarker(line); ok {
		return cat, rem
	}
	if stripped, ok := stripSpeakerPrefix(line); ok {
		if cat, rem, ok := matchMarker(stripped); ok {
			return cat, rem
		}
	}
	return "", ""
}

// matchMarker checks for a case-insensitive marker prefix and returns the
// trimmed remainder.
func matchMarker(line string) (category, remainder string, ok bool) {
	lower := strings.ToLower(line)
	for _, marker := range []string{markerDecision, markerAction, markerRisk} {
		if strings.HasPrefix(lower, marker) {
			return marker, strings.TrimSpace(line[len(marker):]), true
		}
	}
	return "", "", false
}

// stripSpeakerPrefix removes a leading "Name:" speaker tag. The tag must be
// a single capitalized name-like token directly followed by a colon, and
// must not itself be a marker keyword.
func stripSpeakerPrefix(line string) (string, bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", false
	}
	token := line[:idx]
	if strings.ContainsAny(token, " \t") {
		return "", false
	}
	if !isNameLike(token) {
		return "", false
	}
	return strings.TrimSpace(line[idx+1:]), true
}

// ownerCandidates finds name tokens immediately preceding the word "will".
func ownerCandidates(line string) []string {
	var names []string
	words := strings.Fields(line)
	for i, word := range words {
		if i == 0 || !strings.EqualFold(word, "will") {
			continue
		}
		candidate := strings.Trim(words[i-1], ".,!?;:")
		if isNameLike(candidate) {
			names = append(names, candidate)
		}
	}
	return names
}

// isNameLike applies the proper-noun heuristic: starts uppercase, 2 to 20
// runes, only letters plus apostrophe or hyphen, and not a common non-name
// word. "We will ship Friday" therefore yields no owner.
func isNameLike(token string) bool {
	runes := []rune(token)
	if len(runes) < minOwnerLen || len(runes) > maxOwnerLen {
		return false
	}
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && r != '\'' && r != '-' {
			return false
		}
	}
	if _, stop := nonNames[strings.ToLower(token)]; stop {
		return false
	}
	return true
}

// synthesize builds the one-line meeting summary. The wording is fixed and
// depends only on the transcript content: the first substantive line (first
// non-blank line that is not a marker line), truncated, plus a tally of
// what was recovered. Empty input yields an empty summary.
func synthesize(topic string, lines, decisions, actions, risks int) string {
	if lines == 0 {
		return ""
	}
	tally := fmt.Sprintf("%d lines, %d decisions, %d action items, %d risks",
		lines, decisions, actions, risks)
	if topic == "" {
		return fmt.Sprintf("Meeting transcript (%s)", tally)
	}
	return fmt.Sprintf("%s (%s)", truncate(topic, summaryTopicLimit), tally)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
