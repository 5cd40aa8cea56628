// Package query routes natural-language questions about a meeting to the
// relevant MeetingSummary fields via simple keyword dispatch, and renders
// the answers as human-readable text.
package query

import (
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
)

// Topic identifies one answerable aspect of a meeting.
type Topic string

const (
	TopicSummary   Topic = "summary"
	TopicDecisions Topic = "decisions"
	TopicActions   Topic = "actions"
	TopicOwners    Topic = "owners"
	TopicRisks     Topic = "risks"
)

// topicKeywords maps question substrings to topics. Matching is
// case-insensitive substring search over the whole question.
var topicKeywords = []struct {
	keyword string
	topic   Topic
}{
	{"decision", TopicDecisions},
	{"decide", TopicDecisions},
	{"action", TopicActions},
	{"task", TopicActions},
	{"todo", TopicActions},
	{"owner", TopicOwners},
	{"responsible", TopicOwners},
	{"participant", TopicOwners},
	{"who", TopicOwners},
	{"risk", TopicRisks},
	{"concern", TopicRisks},
	{"summary", TopicSummary},
	{"overview", TopicSummary},
	{"about", TopicSummary},
}

// Route returns the topics a question touches, deduplicated in keyword
// priority order. An unrecognized question routes to the full summary.
func Route(question string) []Topic {
	lower := strings.ToLower(question)
	seen := make(map[Topic]struct{})
	var topics []Topic
	for _, kw := range topicKeywords {
		if !strings.Contains(lower, kw.keyword) {
			continue
		}
		if _, dup := seen[kw.topic]; dup {
			continue
		}
		seen[kw.topic] = struct{}{}
		topics = append(topics, kw.topic)
	}
	if len(topics) == 0 {
		topics = append(topics, TopicSummary)
	}
	return topics
}

// Answer renders the sections a question routes to.
func Answer(s *entities.MeetingSummary, question string) string {
	var sections []string
	for _, topic := range Route(question) {
		switch topic {
		case TopicDecisions:
			sections = append(sections, RenderDecisions(s))
		case TopicActions:
			sections = append(sections, RenderActionItems(s))
		case TopicOwners:
			sections = append(sections, RenderOwners(s))
		case TopicRisks:
			sections = append(sections, RenderRisks(s))
		default:
			sections = append(sections, RenderMeeting(s))
		}
	}
	return strings.Join(sections, "\n\n")
}

// RenderMeeting renders all fields of the summary.
func RenderMeeting(s *entities.MeetingSummary) string {
	return fmt.Sprintf("Meeting Summary:\nSummary: %s\nDecisions: %s\nAction Items: %s\nOwners: %s\nRisks: %s",
		s.Summary,
		joinOrNone(s.Decisions),
		joinOrNone(s.ActionItems),
		joinOrNone(s.Owners),
		joinOrNone(s.Risks),
	)
}

// RenderDecisions renders only the decisions.
func RenderDecisions(s *entities.MeetingSummary) string {
	if len(s.Decisions) == 0 {
		return "No decisions were identified in this meeting."
	}
	return "Meeting Decisions:\n" + bullets(s.Decisions)
}

// RenderActionItems renders only the action items.
func RenderActionItems(s *entities.MeetingSummary) string {
	if len(s.ActionItems) == 0 {
		return "No action items were identified in this meeting."
	}
	return "Action Items:\n" + bullets(s.ActionItems)
}

// RenderOwners renders only the owners.
func RenderOwners(s *entities.MeetingSummary) string {
	if len(s.Owners) == 0 {
		return "No specific owners were identified in this meeting."
	}
	return "Meeting Participants/Owners:\n" + bullets(s.Owners)
}

// RenderRisks renders only the risks.
func RenderRisks(s *entities.MeetingSummary) string {
	if len(s.Risks) == 0 {
		return "No risks were identified in this meeting."
	}
	return "Identified Risks:\n" + bullets(s.Risks)
}

// BuildContext produces the structured context block the AI path answers
// questions against.
func BuildContext(s *entities.MeetingSummary, question string) string {
	return fmt.Sprintf(`Based on the meeting transcript, here is the structured information:

SUMMARY: %s

DECISIONS: %s

ACTION ITEMS: %s

OWNERS/PARTICIPANTS: %s

RISKS/CONCERNS: %s

QUESTION: %s

Please provide a helpful, accurate answer to this question based on the meeting information above. If the question cannot be answered from the available information, say so clearly.`,
		s.Summary,
		joinOrNone(s.Decisions),
		joinOrNone(s.ActionItems),
		joinOrNone(s.Owners),
		joinOrNone(s.Risks),
		question,
	)
}

func bullets(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "• "+item)
	}
	return strings.Join(lines, "\n")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
