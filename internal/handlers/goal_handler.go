package handlers

import (
	"log"

	"goaltrack/internal/middleware"
	"goaltrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// GoalHandler handles HTTP requests for goals.
type GoalHandler struct {
	goalService *services.GoalService
	validate    *validator.Validate
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the goal routes. The router must already
// carry the auth middleware.
func (h *GoalHandler) RegisterRoutes(router fiber.Router) {
	goalRoutes := router.Group("/goals")
	goalRoutes.Get("/", h.HandleListGoals)
	goalRoutes.Post("/", h.HandleCreateGoal)
	goalRoutes.Get("/:id", h.HandleListGoalTasks)
	goalRoutes.Delete("/:id", h.HandleDeleteGoal)
}

// HandleListGoals returns all goals of the authenticated user.
func (h *GoalHandler) HandleListGoals(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	goals, err := h.goalService.ListForUser(userID)
	if err != nil {
		log.Printf("Error listing goals for user %s: %v", userID, err)
		return serviceError(c, err)
	}
	return c.JSON(goals)
}

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// HandleCreateGoal creates a goal and returns the full goal list.
func (h *GoalHandler) HandleCreateGoal(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing goal create body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if _, err := h.goalService.Create(userID, req.Title, req.Description); err != nil {
		log.Printf("Error creating goal for user %s: %v", userID, err)
		return serviceError(c, err)
	}

	goals, err := h.goalService.ListForUser(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(goals)
}

// HandleListGoalTasks returns the tasks under one goal.
func (h *GoalHandler) HandleListGoalTasks(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	goalID := c.Params("id")

	tasks, err := h.goalService.ListTasks(userID, goalID)
	if err != nil {
		log.Printf("Error listing tasks of goal %s: %v", goalID, err)
		return serviceError(c, err)
	}
	return c.JSON(tasks)
}

// HandleDeleteGoal deletes a goal, cascading to its tasks, and returns
// the remaining goal list.
func (h *GoalHandler) HandleDeleteGoal(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	goalID := c.Params("id")

	if err := h.goalService.Delete(userID, goalID); err != nil {
		log.Printf("Error deleting goal %s: %v", goalID, err)
		return serviceError(c, err)
	}

	goals, err := h.goalService.ListForUser(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(goals)
}
