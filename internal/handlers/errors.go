package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/services"
)

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(models.MessageResponse{Message: msg})
}

// writeServiceError maps service sentinels onto HTTP responses. Anything
// unrecognised is returned to fiber's ErrorHandler as a 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrCandidateNotFound):
		return message(c, fiber.StatusNotFound, "Candidate not found")
	case errors.Is(err, services.ErrJobNotFound):
		return message(c, fiber.StatusNotFound, "Job not found")
	case errors.Is(err, services.ErrCreatorNotFound),
		errors.Is(err, services.ErrPositionNotFound),
		errors.Is(err, services.ErrInvalidScore):
		return message(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidFile):
		return message(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		return message(c, fiber.StatusConflict, "email already exists")
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTransition):
		return message(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrSemanticSearchDisabled):
		return message(c, fiber.StatusServiceUnavailable, err.Error())
	}
	return err
}

// ErrorHandler renders errors that escaped a handler. Internal details are logged, not returned.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	}

	if code >= fiber.StatusInternalServerError {
		log.Printf("❌ %s %s failed: %v\n", c.Method(), c.Path(), err)
		msg = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"message": msg,
		"code":    code,
	})
}
