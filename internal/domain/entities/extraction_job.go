package entities

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExtractionJobStatus represents the status of an asynchronous extraction job
type ExtractionJobStatus string

const (
	ExtractionJobStatusPending   ExtractionJobStatus = "pending"   // Waiting to be submitted to AssemblyAI
	ExtractionJobStatusSubmitted ExtractionJobStatus = "submitted" // Submitted, waiting for the transcript webhook
	ExtractionJobStatusAnalyzing ExtractionJobStatus = "analyzing" // Transcript received, summarization running
	ExtractionJobStatusCompleted ExtractionJobStatus = "completed" // Summary persisted
	ExtractionJobStatusFailed    ExtractionJobStatus = "failed"    // Processing failed
)

// ExtractionJobType represents the kind of work a job tracks
type ExtractionJobType string

const (
	ExtractionJobTypeTranscription ExtractionJobType = "transcription" // Speech to text
	ExtractionJobTypeAnalysis      ExtractionJobType = "analysis"      // Summary extraction
)

// ExtractionJob tracks asynchronous transcription and analysis work for a
// meeting. Inline-transcript summarization is synchronous and never creates
// a job.
type ExtractionJob struct {
	ID            uuid.UUID           `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID     uuid.UUID           `json:"meeting_id" gorm:"type:uuid;not null;index"`
	JobType       ExtractionJobType   `json:"job_type" gorm:"type:varchar(50);not null;index"`
	Status        ExtractionJobStatus `json:"status" gorm:"type:varchar(50);not null;index;default:'pending'"`
	ExternalJobID *string             `json:"external_job_id,omitempty" gorm:"type:varchar(255);index"` // AssemblyAI transcript ID (nullable)
	AudioURL      string              `json:"audio_url,omitempty" gorm:"type:text"`

	StartedAt   *time.Time `json:"started_at,omitempty" gorm:"type:timestamp"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"type:timestamp"`
	RetryCount  int        `json:"retry_count" gorm:"type:integer;default:0"`
	LastError   *string    `json:"last_error,omitempty" gorm:"type:text"`

	Metadata ExtractionJobMetadata `json:"metadata,omitempty" gorm:"type:jsonb;serializer:json"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the gorm table name.
func (ExtractionJob) TableName() string {
	return "extraction_jobs"
}

// ExtractionJobMetadata stores additional metadata for extraction jobs
type ExtractionJobMetadata struct {
	Language         string `json:"language,omitempty"`
	TranscriptChars  int    `json:"transcript_chars,omitempty"`
	ProcessingTimeMs int64  `json:"processing_time_ms,omitempty"`
	WebhookAttempts  int    `json:"webhook_attempts,omitempty"`
}

// Scan implements sql.Scanner interface for GORM
func (m *ExtractionJobMetadata) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &m)
}

// Value implements driver.Valuer interface for GORM
func (m ExtractionJobMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// NewExtractionJob creates a pending job for a meeting.
func NewExtractionJob(meetingID uuid.UUID, jobType ExtractionJobType, audioURL string) *ExtractionJob {
	return &ExtractionJob{
		ID:        uuid.New(),
		MeetingID: meetingID,
		JobType:   jobType,
		Status:    ExtractionJobStatusPending,
		AudioURL:  audioURL,
	}
}

// MarkSubmitted records the external transcript ID after submission.
func (j *ExtractionJob) MarkSubmitted(externalID string) {
	now := time.Now().UTC()
	j.Status = ExtractionJobStatusSubmitted
	j.ExternalJobID = &externalID
	j.StartedAt = &now
}

// MarkFailed records a terminal failure.
func (j *ExtractionJob) MarkFailed(err error) {
	now := time.Now().UTC()
	j.Status = ExtractionJobStatusFailed
	j.CompletedAt = &now
	if err != nil {
		msg := err.Error()
		j.LastError = &msg
	}
}

// MarkCompleted records successful completion.
func (j *ExtractionJob) MarkCompleted() {
	now := time.Now().UTC()
	j.Status = ExtractionJobStatusCompleted
	j.CompletedAt = &now
}
