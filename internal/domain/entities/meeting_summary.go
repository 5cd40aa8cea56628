package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SummarySource identifies which extraction path produced a summary.
type SummarySource string

const (
	SummarySourceHeuristic SummarySource = "heuristic"
	SummarySourceAI        SummarySource = "ai"
)

// MeetingSummary is the structured extraction result for one transcript.
// The four list fields are never nil; Owners contains no duplicates and
// preserves first-seen order.
type MeetingSummary struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;index"`

	Summary     string                      `json:"summary" gorm:"type:text;not null"`
	Decisions   datatypes.JSONSlice[string] `json:"decisions" gorm:"type:jsonb"`
	ActionItems datatypes.JSONSlice[string] `json:"action_items" gorm:"type:jsonb"`
	Owners      datatypes.JSONSlice[string] `json:"owners" gorm:"type:jsonb"`
	Risks       datatypes.JSONSlice[string] `json:"risks" gorm:"type:jsonb"`

	Source    SummarySource `json:"source" gorm:"type:varchar(20);not null;default:'heuristic'"`
	ModelUsed string        `json:"model_used,omitempty" gorm:"type:varchar(100)"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the gorm table name.
func (MeetingSummary) TableName() string {
	return "meeting_summaries"
}

// NewMeetingSummary builds a summary value with all list fields normalized
// to non-nil slices.
func NewMeetingSummary(summary string, decisions, actionItems, owners, risks []string) *MeetingSummary {
	ms := &MeetingSummary{
		Summary:     summary,
		Decisions:   decisions,
		ActionItems: actionItems,
		Owners:      owners,
		Risks:       risks,
		Source:      SummarySourceHeuristic,
	}
	ms.Normalize()
	return ms
}

// Normalize replaces nil list fields with empty slices so that every
// consumer and every serialization sees `[]`, never `null`.
func (ms *MeetingSummary) Normalize() {
	if ms.Decisions == nil {
		ms.Decisions = datatypes.JSONSlice[string]{}
	}
	if ms.ActionItems == nil {
		ms.ActionItems = datatypes.JSONSlice[string]{}
	}
	if ms.Owners == nil {
		ms.Owners = datatypes.JSONSlice[string]{}
	}
	if ms.Risks == nil {
		ms.Risks = datatypes.JSONSlice[string]{}
	}
}

// IsEmpty reports whether the summary carries no extracted content at all.
func (ms *MeetingSummary) IsEmpty() bool {
	return ms.Summary == "" &&
		len(ms.Decisions) == 0 &&
		len(ms.ActionItems) == 0 &&
		len(ms.Owners) == 0 &&
		len(ms.Risks) == 0
}
