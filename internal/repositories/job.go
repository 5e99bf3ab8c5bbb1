package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/enterprise-ats/internal/models"
)

type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, status string) ([]models.Job, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", translateError(err))
	}
	return nil
}

func (r *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to find job: %w", translateError(err))
	}
	return &job, nil
}

func (r *jobRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Job{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check job: %w", err)
	}
	return count > 0, nil
}

// List returns every job, optionally narrowed to one status.
func (r *jobRepository) List(ctx context.Context, status string) ([]models.Job, error) {
	var jobs []models.Job
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return jobs, nil
}

func (r *jobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update job status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update job status: %w", ErrNotFound)
	}

	return nil
}
