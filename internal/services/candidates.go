package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/repositories"
)

type CandidateService interface {
	AddCandidate(ctx context.Context, req models.CreateCandidateRequest) (*models.Candidate, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (models.CandidateStatus, error)
	SearchCandidates(ctx context.Context, query string, jobID *uuid.UUID) ([]models.CandidateSummary, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.CandidateSummary, error)
	UpdateInterviewScore(ctx context.Context, id uuid.UUID, score int) error
	AddNote(ctx context.Context, id uuid.UUID, req models.AddNoteRequest) (models.Notes, error)
	AttachResume(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (string, error)
}

type candidateService struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	policy        *StatusPolicy
	storage       ResumeStorage
	queue         ResumeQueue
	cache         CacheService
	now           func() time.Time
}

func NewCandidateService(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	policy *StatusPolicy,
	storage ResumeStorage,
	queue ResumeQueue,
	cache CacheService,
) CandidateService {
	if policy == nil {
		policy = NewStatusPolicy(false)
	}
	if cache == nil {
		cache = NewNoopCache()
	}
	return &candidateService{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		policy:        policy,
		storage:       storage,
		queue:         queue,
		cache:         cache,
		now:           time.Now,
	}
}

func (s *candidateService) AddCandidate(ctx context.Context, req models.CreateCandidateRequest) (*models.Candidate, error) {
	jobID, err := uuid.Parse(req.PositionApplied)
	if err != nil {
		return nil, ErrPositionNotFound
	}

	exists, err := s.jobRepo.Exists(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPositionNotFound
	}

	candidate := &models.Candidate{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(req.Name),
		Email:           normalizeEmail(req.Email),
		Phone:           strings.TrimSpace(req.Phone),
		PositionApplied: jobID,
		Resume:          req.Resume,
		Status:          models.CandidateApplied,
		InterviewScore:  0,
		Notes:           models.Notes{},
		DateApplied:     s.now().UTC(),
	}

	if err := s.candidateRepo.Create(ctx, candidate); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return candidate, nil
}

func (s *candidateService) GetCandidate(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	candidate, err := s.candidateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return candidate, nil
}

// UpdateStatus stamps date_hired when a candidate enters Hired and clears it when they leave.
func (s *candidateService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (models.CandidateStatus, error) {
	candidate, err := s.GetCandidate(ctx, id)
	if err != nil {
		return "", err
	}

	next, err := s.policy.Resolve(candidate.Status, status)
	if err != nil {
		return "", err
	}

	var dateHired *time.Time
	if next.IsHired() {
		if candidate.Status.IsHired() && candidate.DateHired != nil {
			dateHired = candidate.DateHired
		} else {
			hiredAt := s.now().UTC()
			dateHired = &hiredAt
		}
	}

	if err := s.candidateRepo.UpdateStatus(ctx, id, next, dateHired); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrCandidateNotFound
		}
		return "", err
	}

	if candidate.Status.IsHired() || next.IsHired() {
		if err := s.cache.Delete(ctx, cacheKeyTimeToHire); err != nil {
			log.Printf("⚠️  Failed to invalidate time-to-hire cache: %v\n", err)
		}
	}

	return next, nil
}

func (s *candidateService) SearchCandidates(ctx context.Context, query string, jobID *uuid.UUID) ([]models.CandidateSummary, error) {
	candidates, err := s.candidateRepo.Search(ctx, repositories.CandidateSearchFilter{
		Query: strings.TrimSpace(query),
		JobID: jobID,
	})
	if err != nil {
		return nil, err
	}
	return toCandidateSummaries(candidates), nil
}

func (s *candidateService) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.CandidateSummary, error) {
	exists, err := s.jobRepo.Exists(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrJobNotFound
	}

	candidates, err := s.candidateRepo.Search(ctx, repositories.CandidateSearchFilter{JobID: &jobID})
	if err != nil {
		return nil, err
	}
	return toCandidateSummaries(candidates), nil
}

func (s *candidateService) UpdateInterviewScore(ctx context.Context, id uuid.UUID, score int) error {
	if score < 0 || score > 100 {
		return ErrInvalidScore
	}

	if err := s.candidateRepo.UpdateInterviewScore(ctx, id, score); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCandidateNotFound
		}
		return err
	}
	return nil
}

func (s *candidateService) AddNote(ctx context.Context, id uuid.UUID, req models.AddNoteRequest) (models.Notes, error) {
	note := models.Note{
		Author:    strings.TrimSpace(req.Author),
		Body:      strings.TrimSpace(req.Body),
		CreatedAt: s.now().UTC(),
	}

	notes, err := s.candidateRepo.AppendNote(ctx, id, note)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCandidateNotFound
		}
		return nil, err
	}
	return notes, nil
}

// AttachResume stores an uploaded PDF, points the candidate at it and queues it for indexing.
func (s *candidateService) AttachResume(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (string, error) {
	if _, err := s.GetCandidate(ctx, id); err != nil {
		return "", err
	}

	stored, err := s.storage.SaveResume(id, file)
	if err != nil {
		return "", err
	}

	if err := s.candidateRepo.UpdateResume(ctx, id, stored.Path); err != nil {
		// Cleanup uploaded file if database update fails
		if delErr := s.storage.Remove(stored.Key); delErr != nil {
			log.Printf("⚠️  Failed to cleanup resume %s: %v\n", stored.Key, delErr)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrCandidateNotFound
		}
		return "", fmt.Errorf("failed to attach resume: %w", err)
	}

	if s.queue != nil {
		s.queue.EnqueueResume(id)
	}

	return stored.Path, nil
}

func toCandidateSummaries(candidates []models.Candidate) []models.CandidateSummary {
	out := make([]models.CandidateSummary, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, models.CandidateSummary{
			ID:     c.ID.String(),
			Name:   c.Name,
			Email:  c.Email,
			Status: string(c.Status),
		})
	}
	return out
}
