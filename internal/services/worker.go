package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/enterprise-ats/internal/repositories"
)

const (
	resumeQueueSize = 100
	pollBatchSize   = 10
)

// ResumeQueue accepts candidates whose uploaded resume needs indexing.
type ResumeQueue interface {
	EnqueueResume(candidateID uuid.UUID)
}

type Worker interface {
	ResumeQueue
	Start(ctx context.Context)
	Stop()
}

type worker struct {
	candidateRepo repositories.CandidateRepository
	indexer       ResumeIndexer
	jobQueue      chan uuid.UUID
	concurrency   int
	pollInterval  time.Duration
	wg            sync.WaitGroup
	stopChan      chan struct{}
	stopOnce      sync.Once
}

func NewWorker(
	candidateRepo repositories.CandidateRepository,
	indexer ResumeIndexer,
	concurrency int,
	pollInterval time.Duration,
) Worker {
	if concurrency < 1 {
		concurrency = 1
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	return &worker{
		candidateRepo: candidateRepo,
		indexer:       indexer,
		jobQueue:      make(chan uuid.UUID, resumeQueueSize),
		concurrency:   concurrency,
		pollInterval:  pollInterval,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting resume worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processResumes(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingResumes(ctx)
}

// Stop implements Worker.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping resume worker...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Resume worker stopped")
	})
}

// EnqueueResume implements ResumeQueue. It never blocks a request: when the
// queue is full the row stays queued in the database and the poller picks it up.
func (w *worker) EnqueueResume(candidateID uuid.UUID) {
	select {
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, resume %s left for the next run\n", candidateID)
	case w.jobQueue <- candidateID:
		log.Printf("📥 Resume %s enqueued\n", candidateID)
	default:
		log.Printf("⚠️  Resume queue full, %s deferred to poller\n", candidateID)
	}
}

func (w *worker) processResumes(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			return
		case candidateID := <-w.jobQueue:
			log.Printf("👷 Worker #%d indexing resume %s\n", workerID, candidateID)
			if err := w.indexer.IndexResume(ctx, candidateID); err != nil {
				log.Printf("❌ Worker #%d failed to index resume %s: %v\n", workerID, candidateID, err)
			}
		}
	}
}

func (w *worker) pollPendingResumes(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			pending, err := w.candidateRepo.FindPendingResumes(ctx, pollBatchSize)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending resumes: %v\n", err)
				continue
			}

			if len(pending) > 0 {
				log.Printf("📋 Found %d pending resumes\n", len(pending))
			}

			for _, candidate := range pending {
				w.EnqueueResume(candidate.ID)
			}
		}
	}
}
