package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/services"
)

type JobHandler struct {
	jobService       services.JobService
	candidateService services.CandidateService
	matchService     services.MatchService
}

func NewJobHandler(
	jobService services.JobService,
	candidateService services.CandidateService,
	matchService services.MatchService,
) *JobHandler {
	return &JobHandler{
		jobService:       jobService,
		candidateService: candidateService,
		matchService:     matchService,
	}
}

// HandleCreateJob handles POST /jobs
func (h *JobHandler) HandleCreateJob(c *fiber.Ctx) error {
	var req models.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if msg := validateRequest(req); msg != "" {
		return message(c, fiber.StatusBadRequest, msg)
	}

	job, err := h.jobService.CreateJob(c.UserContext(), req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.MessageResponse{
		Message: "Job created successfully",
		ID:      job.ID.String(),
	})
}

// HandleListJobs handles GET /jobs
func (h *JobHandler) HandleListJobs(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !models.IsValidJobStatus(status) {
		return message(c, fiber.StatusBadRequest, "status must be Open or Closed")
	}

	jobs, err := h.jobService.ListJobs(c.UserContext(), status)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(jobs)
}

// HandleGetJob handles GET /jobs/:id
func (h *JobHandler) HandleGetJob(c *fiber.Ctx) error {
	jobID, ok := parseJobID(c)
	if !ok {
		return message(c, fiber.StatusNotFound, "Job not found")
	}

	job, err := h.jobService.GetJob(c.UserContext(), jobID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(job)
}

// HandleUpdateJobStatus handles PUT /jobs/:id/status
func (h *JobHandler) HandleUpdateJobStatus(c *fiber.Ctx) error {
	jobID, ok := parseJobID(c)
	if !ok {
		return message(c, fiber.StatusNotFound, "Job not found")
	}

	var req models.UpdateJobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if msg := validateRequest(req); msg != "" {
		return message(c, fiber.StatusBadRequest, msg)
	}

	if err := h.jobService.UpdateJobStatus(c.UserContext(), jobID, models.JobStatus(req.Status)); err != nil {
		return writeServiceError(c, err)
	}

	return message(c, fiber.StatusOK, "Job status updated to "+req.Status)
}

// HandleListJobCandidates handles GET /jobs/:id/candidates
func (h *JobHandler) HandleListJobCandidates(c *fiber.Ctx) error {
	jobID, ok := parseJobID(c)
	if !ok {
		return message(c, fiber.StatusNotFound, "Job not found")
	}

	candidates, err := h.candidateService.ListByJob(c.UserContext(), jobID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(candidates)
}

// HandleMatchCandidates handles GET /jobs/:id/matches
func (h *JobHandler) HandleMatchCandidates(c *fiber.Ctx) error {
	jobID, ok := parseJobID(c)
	if !ok {
		return message(c, fiber.StatusNotFound, "Job not found")
	}

	matches, err := h.matchService.MatchCandidates(c.UserContext(), jobID, c.QueryInt("limit", 0))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(matches)
}

func parseJobID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}
