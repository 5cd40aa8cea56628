package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
)

// SummaryRepository handles meeting summary data operations
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Save upserts the summary for a meeting. A meeting keeps at most one
// summary; re-summarizing replaces the previous row.
func (r *SummaryRepository) Save(ctx context.Context, summary *entities.MeetingSummary) error {
	if summary == nil {
		return errors.New("summary cannot be nil")
	}
	summary.Normalize()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "meeting_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"summary", "decisions", "action_items", "owners", "risks",
				"source", "model_used", "created_at",
			}),
		}).
		Create(summary).Error
}

// GetByMeetingID retrieves the summary for a meeting, nil when not found
func (r *SummaryRepository) GetByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingSummary, error) {
	var summary entities.MeetingSummary
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	summary.Normalize()
	return &summary, nil
}

// DeleteByMeetingID removes the summary for a meeting
func (r *SummaryRepository) DeleteByMeetingID(ctx context.Context, meetingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Delete(&entities.MeetingSummary{}).Error
}
