package handlers

import (
	"log"
	"time"

	"goaltrack/internal/middleware"
	"goaltrack/internal/models"
	"goaltrack/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const dateLayout = "2006-01-02"

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	taskService *services.TaskService
	validate    *validator.Validate
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the task routes. The router must already
// carry the auth middleware. The today/period routes are registered
// before the :id routes so they are not swallowed by the parameter.
func (h *TaskHandler) RegisterRoutes(router fiber.Router) {
	taskRoutes := router.Group("/tasks")
	taskRoutes.Post("/", h.HandleCreateTask)
	taskRoutes.Get("/today", h.HandleTodayTasks)
	taskRoutes.Get("/period", h.HandlePeriodTasks)
	taskRoutes.Get("/:id", h.HandleGetTask)
	taskRoutes.Put("/:id", h.HandleUpdateTask)
	taskRoutes.Delete("/:id", h.HandleDeleteTask)
}

// CreateTaskRequest represents the request body for task creation.
// Dates travel as "YYYY-MM-DD".
type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	GoalID      *string `json:"goal_id" validate:"omitempty,uuid"`
}

// HandleCreateTask creates a task for the authenticated user.
func (h *TaskHandler) HandleCreateTask(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing task create body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		d, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "due_date must be formatted as YYYY-MM-DD",
			})
		}
		dueDate = &d
	}

	task, err := h.taskService.Create(userID, req.Title, req.Description, dueDate, req.GoalID)
	if err != nil {
		log.Printf("Error creating task for user %s: %v", userID, err)
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// HandleGetTask returns a single task of the authenticated user.
func (h *TaskHandler) HandleGetTask(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	taskID := c.Params("id")

	task, err := h.taskService.GetByID(userID, taskID)
	if err != nil {
		log.Printf("Error getting task %s: %v", taskID, err)
		return serviceError(c, err)
	}
	return c.JSON(task)
}

// UpdateTaskRequest represents the request body for a partial task
// edit. Absent fields keep their current value; an empty goal_id
// detaches the task from its goal.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	GoalID      *string `json:"goal_id" validate:"omitempty"`
	IsCompleted *bool   `json:"is_completed"`
}

// HandleUpdateTask applies a partial task edit.
func (h *TaskHandler) HandleUpdateTask(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	taskID := c.Params("id")

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing task update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	update := models.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		GoalID:      req.GoalID,
		IsCompleted: req.IsCompleted,
	}
	if req.DueDate != nil {
		d, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"message": "due_date must be formatted as YYYY-MM-DD",
			})
		}
		update.DueDate = &d
	}

	task, err := h.taskService.Update(userID, taskID, update)
	if err != nil {
		log.Printf("Error updating task %s: %v", taskID, err)
		return serviceError(c, err)
	}
	return c.JSON(task)
}

// HandleDeleteTask deletes a task of the authenticated user.
func (h *TaskHandler) HandleDeleteTask(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)
	taskID := c.Params("id")

	if err := h.taskService.Delete(userID, taskID); err != nil {
		log.Printf("Error deleting task %s: %v", taskID, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Task deleted",
	})
}

// HandleTodayTasks returns the tasks due today by the server clock.
func (h *TaskHandler) HandleTodayTasks(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	tasks, err := h.taskService.ListByDate(userID, time.Now().UTC())
	if err != nil {
		log.Printf("Error listing today's tasks for user %s: %v", userID, err)
		return serviceError(c, err)
	}
	return c.JSON(tasks)
}

// HandlePeriodTasks returns the tasks due within ?start_day&end_day,
// both days inclusive.
func (h *TaskHandler) HandlePeriodTasks(c *fiber.Ctx) error {
	userID := middleware.CurrentUserID(c)

	start, err := time.Parse(dateLayout, c.Query("start_day"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "start_day must be formatted as YYYY-MM-DD",
		})
	}
	end, err := time.Parse(dateLayout, c.Query("end_day"))
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "end_day must be formatted as YYYY-MM-DD",
		})
	}

	tasks, err := h.taskService.ListByDateRange(userID, start, end)
	if err != nil {
		log.Printf("Error listing period tasks for user %s: %v", userID, err)
		return serviceError(c, err)
	}
	return c.JSON(tasks)
}
