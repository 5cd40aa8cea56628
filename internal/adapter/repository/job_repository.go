package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-copilot/internal/domain/entities"
)

// JobRepository handles extraction job data operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new extraction job repository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create persists a new extraction job
func (r *JobRepository) Create(ctx context.Context, job *entities.ExtractionJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID retrieves an extraction job by ID, nil when not found
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ExtractionJob, error) {
	var job entities.ExtractionJob
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// GetByExternalID retrieves a job by its AssemblyAI transcript ID
func (r *JobRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.ExtractionJob, error) {
	var job entities.ExtractionJob
	if err := r.db.WithContext(ctx).Where("external_job_id = ?", externalID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// Update saves changes to an extraction job
func (r *JobRepository) Update(ctx context.Context, job *entities.ExtractionJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.ExtractionJob{}).
		Where("id = ?", job.ID).
		Save(job).Error
}
