package services

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/repositories"
)

const (
	defaultMatchLimit = 10
	maxMatchLimit     = 50
	// Several chunks of one resume can rank, so fetch more hits than candidates wanted.
	hitsPerCandidate = 4
)

type MatchService interface {
	MatchCandidates(ctx context.Context, jobID uuid.UUID, limit int) ([]models.CandidateMatch, error)
}

type matchService struct {
	jobRepo       repositories.JobRepository
	candidateRepo repositories.CandidateRepository
	gemini        GeminiService
	vectors       VectorStore
	promptBuilder *PromptBuilder
}

func NewMatchService(
	jobRepo repositories.JobRepository,
	candidateRepo repositories.CandidateRepository,
	gemini GeminiService,
	vectors VectorStore,
) MatchService {
	return &matchService{
		jobRepo:       jobRepo,
		candidateRepo: candidateRepo,
		gemini:        gemini,
		vectors:       vectors,
		promptBuilder: NewPromptBuilder(),
	}
}

// MatchCandidates ranks indexed resumes by similarity to the job posting.
// A candidate's score is its best scoring resume chunk.
func (m *matchService) MatchCandidates(ctx context.Context, jobID uuid.UUID, limit int) ([]models.CandidateMatch, error) {
	if m.gemini == nil || m.vectors == nil {
		return nil, ErrSemanticSearchDisabled
	}

	if limit <= 0 {
		limit = defaultMatchLimit
	}
	if limit > maxMatchLimit {
		limit = maxMatchLimit
	}

	job, err := m.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	query := m.promptBuilder.BuildJobQuery(job.Title, job.Department, job.Description)
	embedding, err := m.gemini.GenerateEmbedding(ctx, query, embedTaskQuery)
	if err != nil {
		return nil, err
	}

	hits, err := m.vectors.SearchResumes(ctx, embedding, limit*hitsPerCandidate)
	if err != nil {
		return nil, err
	}

	best := make(map[uuid.UUID]ResumeHit)
	for _, hit := range hits {
		if current, ok := best[hit.CandidateID]; !ok || hit.Score > current.Score {
			best[hit.CandidateID] = hit
		}
	}

	ids := make([]uuid.UUID, 0, len(best))
	for id := range best {
		ids = append(ids, id)
	}

	candidates, err := m.candidateRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	matches := make([]models.CandidateMatch, 0, len(candidates))
	for _, c := range candidates {
		hit := best[c.ID]
		matches = append(matches, models.CandidateMatch{
			CandidateID: c.ID.String(),
			Name:        c.Name,
			Email:       c.Email,
			Status:      string(c.Status),
			Score:       hit.Score,
			Excerpt:     excerpt(hit.Text, 240),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func excerpt(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
