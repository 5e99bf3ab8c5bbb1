package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/repositories"
)

const resumeScreenerAuthor = "resume-screener"

// ResumeIndexer extracts an uploaded resume and, when semantic search is
// configured, embeds it into the vector store and leaves a screening note.
type ResumeIndexer interface {
	IndexResume(ctx context.Context, candidateID uuid.UUID) error
	// ReindexText re-embeds already extracted text without touching the PDF.
	ReindexText(ctx context.Context, candidate *models.Candidate) (int, error)
}

type resumeIndexer struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	parser        ResumeParser
	chunker       TextChunker
	gemini        GeminiService
	vectors       VectorStore
	promptBuilder *PromptBuilder
	maxRetries    int
	now           func() time.Time
}

// NewResumeIndexer accepts nil gemini/vectors; text extraction still runs without them.
func NewResumeIndexer(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	parser ResumeParser,
	chunker TextChunker,
	gemini GeminiService,
	vectors VectorStore,
	maxRetries int,
) ResumeIndexer {
	if chunker == nil {
		chunker = NewTextChunker()
	}
	return &resumeIndexer{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		parser:        parser,
		chunker:       chunker,
		gemini:        gemini,
		vectors:       vectors,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
		now:           time.Now,
	}
}

func (r *resumeIndexer) semanticEnabled() bool {
	return r.gemini != nil && r.vectors != nil
}

func (r *resumeIndexer) IndexResume(ctx context.Context, candidateID uuid.UUID) error {
	candidate, err := r.candidateRepo.FindByID(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("failed to load candidate: %w", err)
	}

	// Duplicate queue entries for an already handled resume are dropped.
	if candidate.ResumeIndexStatus != models.ResumeIndexQueued {
		log.Printf("⏭️  Resume for candidate %s is %q, skipping\n", candidateID, candidate.ResumeIndexStatus)
		return nil
	}

	claimed, err := r.candidateRepo.ClaimResume(ctx, candidateID)
	if err != nil {
		return fmt.Errorf("failed to claim resume: %w", err)
	}
	if !claimed {
		log.Printf("⏭️  Resume for candidate %s already claimed, skipping\n", candidateID)
		return nil
	}

	log.Printf("📄 Parsing resume for candidate %s...\n", candidateID)
	content, err := r.parser.ExtractText(candidate.Resume)
	if err != nil {
		return r.fail(ctx, candidateID, fmt.Errorf("failed to parse resume: %w", err))
	}
	candidate.ResumeText = content.Text

	if r.semanticEnabled() {
		chunks, err := r.ReindexText(ctx, candidate)
		if err != nil {
			return r.fail(ctx, candidateID, err)
		}
		log.Printf("✅ Stored %d resume chunks for candidate %s\n", chunks, candidateID)

		// A screening note is a nice-to-have; its failure does not fail indexing.
		if err := r.screen(ctx, candidate); err != nil {
			log.Printf("⚠️  Resume screening skipped for candidate %s: %v\n", candidateID, err)
		}
	}

	text := content.Text
	if err := r.candidateRepo.UpdateResumeIndex(ctx, candidateID, &repositories.ResumeIndexUpdateData{
		Status:     models.ResumeIndexIndexed,
		ResumeText: &text,
	}); err != nil {
		return fmt.Errorf("failed to save resume index: %w", err)
	}

	log.Printf("✅ Resume indexed for candidate %s (%d pages)\n", candidateID, content.PageCount)
	return nil
}

func (r *resumeIndexer) ReindexText(ctx context.Context, candidate *models.Candidate) (int, error) {
	if !r.semanticEnabled() {
		return 0, ErrSemanticSearchDisabled
	}

	if err := r.vectors.DeleteCandidate(ctx, candidate.ID); err != nil {
		return 0, err
	}

	texts := r.chunker.ChunkText(candidate.ResumeText, defaultChunkSize, defaultChunkOverlap)
	chunks := make([]ResumeChunk, 0, len(texts))
	for i, text := range texts {
		embedding, err := r.gemini.GenerateEmbedding(ctx, text, embedTaskDocument)
		if err != nil {
			return 0, fmt.Errorf("failed to embed resume chunk %d: %w", i, err)
		}
		chunks = append(chunks, ResumeChunk{
			CandidateID: candidate.ID,
			JobID:       candidate.PositionApplied,
			Index:       i,
			Text:        text,
			Embedding:   embedding,
		})
	}

	if err := r.vectors.UpsertResumeChunks(ctx, chunks); err != nil {
		return 0, err
	}

	return len(chunks), nil
}

func (r *resumeIndexer) screen(ctx context.Context, candidate *models.Candidate) error {
	job, err := r.jobRepo.FindByID(ctx, candidate.PositionApplied)
	if err != nil {
		return err
	}

	prompt := r.promptBuilder.BuildResumeScreeningPrompt(candidate.ResumeText, job.Title, job.Description)
	response, err := r.gemini.GenerateTextWithRetry(ctx, prompt, 0.2, r.maxRetries)
	if err != nil {
		return err
	}

	screening, err := ParseResumeScreening(response)
	if err != nil {
		return err
	}

	_, err = r.candidateRepo.AppendNote(ctx, candidate.ID, models.Note{
		Author:    resumeScreenerAuthor,
		Body:      FormatScreeningNote(screening),
		CreatedAt: r.now().UTC(),
	})
	return err
}

func (r *resumeIndexer) fail(ctx context.Context, candidateID uuid.UUID, cause error) error {
	msg := cause.Error()
	if err := r.candidateRepo.UpdateResumeIndex(ctx, candidateID, &repositories.ResumeIndexUpdateData{
		Status:       models.ResumeIndexFailed,
		ErrorMessage: &msg,
	}); err != nil {
		return errors.Join(cause, fmt.Errorf("failed to record resume failure: %w", err))
	}
	return cause
}
