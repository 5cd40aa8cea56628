package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
)

// MeetingRepository defines persistence operations for meetings
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
	List(ctx context.Context, limit, offset int) ([]*entities.Meeting, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SummaryRepository defines persistence operations for meeting summaries
type SummaryRepository interface {
	Save(ctx context.Context, summary *entities.MeetingSummary) error
	GetByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingSummary, error)
	DeleteByMeetingID(ctx context.Context, meetingID uuid.UUID) error
}

// JobRepository defines persistence operations for extraction jobs
type JobRepository interface {
	Create(ctx context.Context, job *entities.ExtractionJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ExtractionJob, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.ExtractionJob, error)
	Update(ctx context.Context, job *entities.ExtractionJob) error
}
