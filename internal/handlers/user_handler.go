package handlers

import (
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// HandleCreateUser handles POST /users
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req models.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return message(c, fiber.StatusBadRequest, "Invalid request payload")
	}

	if msg := validateRequest(req); msg != "" {
		return message(c, fiber.StatusBadRequest, msg)
	}

	user, err := h.userService.CreateUser(c.UserContext(), req)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.MessageResponse{
		Message: "User created successfully",
		ID:      user.ID.String(),
	})
}

// HandleListUsers handles GET /users
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userService.ListUsers(c.UserContext())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(users)
}
