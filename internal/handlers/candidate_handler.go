package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/services"
)

type CandidateHandler struct {
	candidateService services.CandidateService
}

func NewCandidateHandler(candidateService services.CandidateService) *CandidateHandler {
	return &CandidateHandler{candidateService: candidateService}
}

// HandleAddCandidate handles POST /candidates
func (h *CandidateHandler) HandleAddCandidate(c *fiber.Ctx) error {
	var req models.CreateCandidateRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if msg := validateRequest(req); msg != "" {
		return message(c, fiber.StatusBadRequest, msg)
	}

	candidate, err := h.candidateService.AddCandidate(c.UserContext(), req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.MessageResponse{
		Message: "Candidate added successfully",
		ID:      candidate.ID.String(),
	})
}

// HandleGetCandidate handles GET /candidates/:id
func (h *CandidateHandler) HandleGetCandidate(c *fiber.Ctx) error {
	candidateID, ok := parseCandidateID(c)
	if !ok {
		return message(c, fiber.StatusNotFound, "Candidate not found")
	}

	candidate, err := h.candidateService.GetCandidate(c.UserContext(), candidateID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(candidate)
}

// HandleUpdateStatus handles PUT /candidates/:id/status
func (h *CandidateHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	candidateID, ok := parseCandidateID(c)
	if !ok {
		return message(c, fiber.StatusNotFound, "Candidate not found")
	}

	var req models.UpdateCandidateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	req.Status = strings.TrimSpace(req.Status)
	if msg := validateRequest(req); msg != "" {
		return message(c, fiber.StatusBadRequest, msg)
	}

	status, err := h.candidateService.UpdateStatus(c.UserContext(), candidateID, req.Status)
	if err != nil {
		return writeServiceError(c, err)
	}

	return message(c, fiber.StatusOK, fmt.Sprintf("Candidate status updated to %s", status))
}

// HandleSearchCandidates handles GET /candidates/search?query=&job_id=
func (h *CandidateHandler) HandleSearchCandidates(c *fiber.Ctx) error {
	var jobID *uuid.UUID
	if raw := c.Query("job_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return message(c, fiber.StatusBadRequest, "job_id must be a valid UUID")
		}
		jobID = &id
	}

	candidates, err := h.candidateService.SearchCandidates(c.UserContext(), c.Query("query"), jobID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(candidates)
}

// HandleUpdateScore handles PUT /candidates/:id/score
func (h *CandidateHandler) HandleUpdateScore(c *fiber.Ctx) error {
	candidateID, ok := parseCandidateID(c)
	if !ok {
		return message(c, fiber.StatusNotFound, "Candidate not found")
	}

	var req models.UpdateInterviewScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if msg := validateRequest(req); msg != "" {
		return message(c, fiber.StatusBadRequest, msg)
	}

	if err := h.candidateService.UpdateInterviewScore(c.UserContext(), candidateID, *req.InterviewScore); err != nil {
		return writeServiceError(c, err)
	}

	return message(c, fiber.StatusOK, fmt.Sprintf("Interview score updated to %d", *req.InterviewScore))
}

// HandleAddNote handles POST /candidates/:id/notes
func (h *CandidateHandler) HandleAddNote(c *fiber.Ctx) error {
	candidateID, ok := parseCandidateID(c)
	if !ok {
		return message(c, fiber.StatusNotFound, "Candidate not found")
	}

	var req models.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if msg := validateRequest(req); msg != "" {
		return message(c, fiber.StatusBadRequest, msg)
	}

	notes, err := h.candidateService.AddNote(c.UserContext(), candidateID, req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(notes)
}

// HandleUploadResume handles POST /candidates/:id/resume
func (h *CandidateHandler) HandleUploadResume(c *fiber.Ctx) error {
	candidateID, ok := parseCandidateID(c)
	if !ok {
		return message(c, fiber.StatusNotFound, "Candidate not found")
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return message(c, fiber.StatusBadRequest, "resume file is required")
	}

	path, err := h.candidateService.AttachResume(c.UserContext(), candidateID, file)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(models.ResumeUploadResponse{
		Message:     "Resume uploaded successfully",
		CandidateID: candidateID.String(),
		Resume:      path,
		IndexStatus: string(models.ResumeIndexQueued),
	})
}

func parseCandidateID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	return id, err == nil
}
