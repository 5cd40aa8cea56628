package meeting

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
)

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Source         string    `json:"source"`
	Status         string    `json:"status"`
	TranscriptText string    `json:"transcript_text,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SummaryResponse represents an extracted meeting summary
type SummaryResponse struct {
	MeetingID   string    `json:"meeting_id,omitempty"`
	Summary     string    `json:"summary"`
	Decisions   []string  `json:"decisions"`
	ActionItems []string  `json:"action_items"`
	Owners      []string  `json:"owners"`
	Risks       []string  `json:"risks"`
	Source      string    `json:"source"`
	ModelUsed   string    `json:"model_used,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AnswerResponse represents a Q&A answer
type AnswerResponse struct {
	MeetingID string `json:"meeting_id,omitempty"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}

// TranscribeResponse acknowledges a transcription submission
type TranscribeResponse struct {
	MeetingID string `json:"meeting_id"`
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
}

// FromMeeting converts a meeting entity to its response shape.
// includeTranscript controls whether the full transcript text is echoed.
func FromMeeting(m *entities.Meeting, includeTranscript bool) *MeetingResponse {
	resp := &MeetingResponse{
		ID:        m.ID.String(),
		Title:     m.Title,
		Source:    string(m.Source),
		Status:    string(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if includeTranscript {
		resp.TranscriptText = m.TranscriptText
	}
	return resp
}

// FromSummary converts a summary entity to its response shape.
func FromSummary(s *entities.MeetingSummary) *SummaryResponse {
	s.Normalize()
	resp := &SummaryResponse{
		Summary:     s.Summary,
		Decisions:   s.Decisions,
		ActionItems: s.ActionItems,
		Owners:      s.Owners,
		Risks:       s.Risks,
		Source:      string(s.Source),
		ModelUsed:   s.ModelUsed,
		CreatedAt:   s.CreatedAt,
	}
	if s.MeetingID != uuid.Nil {
		resp.MeetingID = s.MeetingID.String()
	}
	return resp
}
