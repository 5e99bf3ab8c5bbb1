package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"alfredoptarigan/enterprise-ats/internal/config"
	"alfredoptarigan/enterprise-ats/internal/handlers"
	"alfredoptarigan/enterprise-ats/internal/repositories"
	"alfredoptarigan/enterprise-ats/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Failed to get database handle: %v", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	candidateRepo := repositories.NewCandidateRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	log.Println("✅ Repositories initialized successfully")

	cache := services.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)

	storageService := services.NewResumeStorage(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Gemini and Qdrant are optional; without them resumes are only text-extracted
	var (
		geminiService services.GeminiService
		vectorStore   services.VectorStore
	)
	if cfg.SemanticSearchEnabled() {
		geminiService, err = services.NewGeminiService(ctx, cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")

		vectorStore, err = services.NewQdrantStore(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := vectorStore.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY or QDRANT_URL not set, semantic matching disabled")
	}

	indexer := services.NewResumeIndexer(
		candidateRepo,
		jobRepo,
		services.NewPDFResumeParser(),
		services.NewTextChunker(),
		geminiService,
		vectorStore,
		cfg.Worker.RetryMaxAttempts,
	)

	worker := services.NewWorker(
		candidateRepo,
		indexer,
		cfg.Worker.Concurrency,
		cfg.Worker.PollInterval,
	)
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	policy := services.NewStatusPolicy(cfg.Candidate.StrictStatus)
	if policy.Strict() {
		log.Println("🔒 Strict candidate status transitions enabled")
	}

	userService := services.NewUserService(userRepo)
	jobService := services.NewJobService(jobRepo, userRepo, cache)
	candidateService := services.NewCandidateService(candidateRepo, jobRepo, policy, storageService, worker, cache)
	reportService := services.NewReportService(reportRepo, cache)
	matchService := services.NewMatchService(jobRepo, candidateRepo, geminiService, vectorStore)
	log.Println("✅ Services initialized successfully")

	app := handlers.NewServer(
		handlers.ServerConfig{
			AppName:       "Enterprise ATS API",
			MaxUploadSize: cfg.Storage.MaxFileSize,
			AccessLog:     true,
		},
		handlers.Handlers{
			Users:      handlers.NewUserHandler(userService),
			Jobs:       handlers.NewJobHandler(jobService, candidateService, matchService),
			Candidates: handlers.NewCandidateHandler(candidateService),
			Reports:    handlers.NewReportHandler(reportService),
			DB:         sqlDB,
		},
	)
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		cancel()
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
