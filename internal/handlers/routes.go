package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/enterprise-ats/internal/models"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Users      *UserHandler
	Jobs       *JobHandler
	Candidates *CandidateHandler
	Reports    *ReportHandler
	DB         Pinger
}

// multipartOverhead covers form boundaries and part headers around an upload.
const multipartOverhead = 1 << 20

type ServerConfig struct {
	AppName string
	// MaxUploadSize is the largest resume file accepted. The request body
	// limit is derived from it so a file at the limit still gets through.
	MaxUploadSize int64
	AccessLog     bool
}

func (cfg ServerConfig) bodyLimit() int {
	if cfg.MaxUploadSize <= 0 {
		return fiber.DefaultBodyLimit
	}
	return int(cfg.MaxUploadSize) + multipartOverhead
}

// NewServer builds the fiber app with middleware and every route registered.
func NewServer(cfg ServerConfig, h Handlers) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    cfg.bodyLimit(),
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	if cfg.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	RegisterRoutes(app, h)
	return app
}

func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/health", healthCheck(h.DB))

	app.Post("/users", h.Users.HandleCreateUser)
	app.Get("/users", h.Users.HandleListUsers)

	app.Post("/jobs", h.Jobs.HandleCreateJob)
	app.Get("/jobs", h.Jobs.HandleListJobs)
	app.Get("/jobs/:id", h.Jobs.HandleGetJob)
	app.Put("/jobs/:id/status", h.Jobs.HandleUpdateJobStatus)
	app.Get("/jobs/:id/candidates", h.Jobs.HandleListJobCandidates)
	app.Get("/jobs/:id/matches", h.Jobs.HandleMatchCandidates)

	// search must be registered before /candidates/:id
	app.Get("/candidates/search", h.Candidates.HandleSearchCandidates)
	app.Post("/candidates", h.Candidates.HandleAddCandidate)
	app.Get("/candidates/:id", h.Candidates.HandleGetCandidate)
	app.Put("/candidates/:id/status", h.Candidates.HandleUpdateStatus)
	app.Put("/candidates/:id/score", h.Candidates.HandleUpdateScore)
	app.Post("/candidates/:id/notes", h.Candidates.HandleAddNote)
	app.Post("/candidates/:id/resume", h.Candidates.HandleUploadResume)

	app.Get("/reports/time_to_hire", h.Reports.HandleTimeToHire)
}

func healthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(models.HealthResponse{
					Status: "unhealthy",
					Time:   time.Now(),
				})
			}
		}

		return c.JSON(models.HealthResponse{
			Status: "healthy",
			Time:   time.Now(),
		})
	}
}
