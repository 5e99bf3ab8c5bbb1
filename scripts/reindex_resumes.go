package main

import (
	"context"
	"log"
	"os"
	"strings"

	"alfredoptarigan/enterprise-ats/internal/config"
	"alfredoptarigan/enterprise-ats/internal/repositories"
	"alfredoptarigan/enterprise-ats/internal/services"
)

// Re-embeds every candidate resume that already has extracted text, e.g. after
// switching Qdrant collections or embedding models.
func main() {
	log.Println("🚀 Starting resume re-index...")

	cfg := config.Load()
	if !cfg.SemanticSearchEnabled() {
		log.Fatalf("❌ GEMINI_API_KEY and QDRANT_URL are required for re-indexing")
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	ctx := context.Background()

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	vectorStore, err := services.NewQdrantStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(ctx); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	candidateRepo := repositories.NewCandidateRepository(db)
	indexer := services.NewResumeIndexer(
		candidateRepo,
		repositories.NewJobRepository(db),
		services.NewPDFResumeParser(),
		services.NewTextChunker(),
		geminiService,
		vectorStore,
		cfg.Worker.RetryMaxAttempts,
	)

	candidates, err := candidateRepo.FindWithResumeText(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to load candidates: %v", err)
	}

	successCount := 0
	failCount := 0

	for i := range candidates {
		candidate := &candidates[i]
		log.Printf("\n📄 Processing: %s <%s>", candidate.Name, candidate.Email)

		chunks, err := indexer.ReindexText(ctx, candidate)
		if err != nil {
			log.Printf("   ❌ Failed to re-index: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Stored %d chunks", chunks)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Re-index Summary:")
	log.Printf("   ✅ Successful: %d resumes", successCount)
	log.Printf("   ❌ Failed: %d resumes", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some resumes failed to re-index. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All resumes re-indexed successfully!")
}
