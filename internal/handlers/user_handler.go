package handlers

import (
	"log"

	"goaltrack/internal/middleware"
	"goaltrack/internal/models"
	"goaltrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for the authenticated user's profile.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the profile routes. The router must already
// carry the auth middleware.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users/me")
	userRoutes.Get("/", h.HandleGetProfile)
	userRoutes.Put("/edit", h.HandleUpdateProfile)
	userRoutes.Put("/edit_password", h.HandleUpdatePassword)
}

// HandleGetProfile returns the user together with their goals and
// active tasks.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		log.Printf("Error getting profile for user %s: %v", userID, err)
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":    profile.User.ID,
		"name":  profile.User.Name,
		"email": profile.User.Email,
		"goals": profile.Goals,
		"tasks": profile.Tasks,
	})
}

// HandleUpdateProfile applies a partial profile edit.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var update models.UserUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing profile update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(update); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.UpdateProfile(userID, update)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", userID, err)
		return serviceError(c, err)
	}
	return c.JSON(user)
}

// PasswordUpdateRequest represents the request body for a password change.
type PasswordUpdateRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// HandleUpdatePassword replaces the stored password hash.
func (h *UserHandler) HandleUpdatePassword(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req PasswordUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing password update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.userService.UpdatePassword(userID, req.NewPassword)
	if err != nil {
		log.Printf("Error updating password for user %s: %v", userID, err)
		return serviceError(c, err)
	}
	return c.JSON(user)
}
