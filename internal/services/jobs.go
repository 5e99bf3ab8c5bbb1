package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/repositories"
)

type JobService interface {
	CreateJob(ctx context.Context, req models.CreateJobRequest) (*models.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	ListJobs(ctx context.Context, status string) ([]models.JobSummary, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error
}

type jobService struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
	cache    CacheService
}

func NewJobService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	cache CacheService,
) JobService {
	if cache == nil {
		cache = NewNoopCache()
	}
	return &jobService{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		cache:    cache,
	}
}

func (s *jobService) CreateJob(ctx context.Context, req models.CreateJobRequest) (*models.Job, error) {
	creatorID, err := uuid.Parse(req.CreatedBy)
	if err != nil {
		return nil, ErrCreatorNotFound
	}

	exists, err := s.userRepo.Exists(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCreatorNotFound
	}

	job := &models.Job{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(req.Title),
		Department:  strings.TrimSpace(req.Department),
		Location:    req.Location,
		Description: req.Description,
		Status:      models.JobStatusOpen,
		CreatedBy:   creatorID,
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	s.invalidateJobs(ctx)
	return job, nil
}

func (s *jobService) GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, status string) ([]models.JobSummary, error) {
	key := jobsListCacheKey(status)

	var cached []models.JobSummary
	if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	jobs, err := s.jobRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	out := make([]models.JobSummary, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, models.JobSummary{
			ID:         job.ID.String(),
			Title:      job.Title,
			Department: job.Department,
			Location:   job.Location,
			Status:     string(job.Status),
		})
	}

	if err := s.cache.SetJSON(ctx, key, out); err != nil {
		log.Printf("⚠️  Failed to cache job list: %v\n", err)
	}
	return out, nil
}

func (s *jobService) UpdateJobStatus(ctx context.Context, id uuid.UUID, status models.JobStatus) error {
	if !models.IsValidJobStatus(string(status)) {
		return fmt.Errorf("%w: job status must be Open or Closed", ErrInvalidStatus)
	}

	if err := s.jobRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrJobNotFound
		}
		return err
	}

	s.invalidateJobs(ctx)
	return nil
}

func (s *jobService) invalidateJobs(ctx context.Context) {
	if err := s.cache.DeleteByPrefix(ctx, cacheKeyJobsPrefix); err != nil {
		log.Printf("⚠️  Failed to invalidate job cache: %v\n", err)
	}
}
