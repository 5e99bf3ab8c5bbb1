package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/enterprise-ats/internal/models"
)

type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Candidate, error)
	Search(ctx context.Context, filter CandidateSearchFilter) ([]models.Candidate, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.CandidateStatus, dateHired *time.Time) error
	UpdateInterviewScore(ctx context.Context, id uuid.UUID, score int) error
	AppendNote(ctx context.Context, id uuid.UUID, note models.Note) (models.Notes, error)
	UpdateResume(ctx context.Context, id uuid.UUID, path string) error
	ClaimResume(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateResumeIndex(ctx context.Context, id uuid.UUID, data *ResumeIndexUpdateData) error
	FindPendingResumes(ctx context.Context, limit int) ([]models.Candidate, error)
	FindWithResumeText(ctx context.Context) ([]models.Candidate, error)
}

// CandidateSearchFilter narrows candidate lookups. An empty Query matches everyone.
type CandidateSearchFilter struct {
	Query string
	JobID *uuid.UUID
}

type ResumeIndexUpdateData struct {
	Status       models.ResumeIndexStatus
	ResumeText   *string
	ErrorMessage *string
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", translateError(err))
	}
	return nil
}

func (r *candidateRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&candidate).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidate: %w", translateError(err))
	}
	return &candidate, nil
}

func (r *candidateRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	if len(ids) == 0 {
		return candidates, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to find candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) Search(ctx context.Context, filter CandidateSearchFilter) ([]models.Candidate, error) {
	var candidates []models.Candidate

	query := r.db.WithContext(ctx).Model(&models.Candidate{})
	if filter.Query != "" {
		pattern := "%" + escapeLike(filter.Query) + "%"
		query = query.Where(`name ILIKE ? ESCAPE '\' OR status ILIKE ? ESCAPE '\'`, pattern, pattern)
	}
	if filter.JobID != nil {
		query = query.Where("position_applied = ?", *filter.JobID)
	}

	if err := query.Order("date_applied ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}
	return candidates, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes the query match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// UpdateStatus writes status and date_hired together; a nil dateHired clears the column.
func (r *candidateRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CandidateStatus, dateHired *time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"date_hired": dateHired,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update candidate status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update candidate status: %w", ErrNotFound)
	}

	return nil
}

func (r *candidateRepository) UpdateInterviewScore(ctx context.Context, id uuid.UUID, score int) error {
	result := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"interview_score": score,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update interview score: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update interview score: %w", ErrNotFound)
	}

	return nil
}

// AppendNote adds a note under a row lock so concurrent appends are not lost.
func (r *candidateRepository) AppendNote(ctx context.Context, id uuid.UUID, note models.Note) (models.Notes, error) {
	var notes models.Notes

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidate models.Candidate
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "notes").
			Where("id = ?", id).
			First(&candidate).Error; err != nil {
			return translateError(err)
		}

		notes = append(candidate.Notes, note)

		return tx.Model(&models.Candidate{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"notes":      notes,
				"updated_at": time.Now(),
			}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to append note: %w", err)
	}

	return notes, nil
}

// UpdateResume records a newly uploaded resume and queues it for indexing.
func (r *candidateRepository) UpdateResume(ctx context.Context, id uuid.UUID, path string) error {
	result := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resume":              path,
			"resume_index_status": models.ResumeIndexQueued,
			"resume_index_error":  nil,
			"updated_at":          time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update resume: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update resume: %w", ErrNotFound)
	}

	return nil
}

// ClaimResume moves a queued resume to processing. Only one caller can win
// the claim for a given upload; the others get false.
func (r *candidateRepository) ClaimResume(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ? AND resume_index_status = ?", id, models.ResumeIndexQueued).
		Updates(map[string]interface{}{
			"resume_index_status": models.ResumeIndexProcessing,
			"updated_at":          time.Now(),
		})

	if result.Error != nil {
		return false, fmt.Errorf("failed to claim resume: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *candidateRepository) UpdateResumeIndex(ctx context.Context, id uuid.UUID, data *ResumeIndexUpdateData) error {
	updates := map[string]interface{}{
		"resume_index_status": data.Status,
		"resume_index_error":  data.ErrorMessage,
		"updated_at":          time.Now(),
	}

	if data.ResumeText != nil {
		updates["resume_text"] = *data.ResumeText
	}

	result := r.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update resume index: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update resume index: %w", ErrNotFound)
	}

	return nil
}

func (r *candidateRepository) FindPendingResumes(ctx context.Context, limit int) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.WithContext(ctx).
		Where("resume_index_status = ?", models.ResumeIndexQueued).
		Order("updated_at ASC").
		Limit(limit).
		Find(&candidates).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find pending resumes: %w", err)
	}

	return candidates, nil
}

func (r *candidateRepository) FindWithResumeText(ctx context.Context) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.WithContext(ctx).
		Where("resume_text IS NOT NULL AND resume_text <> ''").
		Order("date_applied ASC").
		Find(&candidates).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find indexed resumes: %w", err)
	}

	return candidates, nil
}
