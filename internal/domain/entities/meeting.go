package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the lifecycle of a meeting record
type MeetingStatus string

const (
	MeetingStatusDraft        MeetingStatus = "draft"        // Created, no transcript yet
	MeetingStatusTranscribing MeetingStatus = "transcribing" // Audio submitted, waiting for transcript
	MeetingStatusReady        MeetingStatus = "ready"        // Transcript available
)

// MeetingSource indicates how the transcript entered the system
type MeetingSource string

const (
	MeetingSourceInline MeetingSource = "inline" // Transcript text provided directly
	MeetingSourceAudio  MeetingSource = "audio"  // Transcript produced from an audio recording
)

// Meeting is a transcript container. The transcript itself is an opaque
// line-oriented text blob; all structure is recovered at extraction time.
type Meeting struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title          string        `json:"title" gorm:"type:varchar(255);not null"`
	TranscriptText string        `json:"transcript_text" gorm:"type:text"`
	ObjectKey      string        `json:"object_key,omitempty" gorm:"type:varchar(512)"` // MinIO object for the raw transcript
	Source         MeetingSource `json:"source" gorm:"type:varchar(20);not null;default:'inline'"`
	Status         MeetingStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the gorm table name.
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a meeting with an inline transcript.
func NewMeeting(title, transcript string) *Meeting {
	status := MeetingStatusDraft
	if strings.TrimSpace(transcript) != "" {
		status = MeetingStatusReady
	}
	return &Meeting{
		ID:             uuid.New(),
		Title:          title,
		TranscriptText: transcript,
		Source:         MeetingSourceInline,
		Status:         status,
	}
}

// NewAudioMeeting creates a meeting whose transcript will arrive from
// a transcription job.
func NewAudioMeeting(title string) *Meeting {
	return &Meeting{
		ID:     uuid.New(),
		Title:  title,
		Source: MeetingSourceAudio,
		Status: MeetingStatusDraft,
	}
}

// HasTranscript reports whether there is any non-blank transcript text.
func (m *Meeting) HasTranscript() bool {
	return strings.TrimSpace(m.TranscriptText) != ""
}
