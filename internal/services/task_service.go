package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"goaltrack/internal/models"
	"goaltrack/internal/repositories"
	"goaltrack/pkg/rabbitmq"
)

// TaskService handles business logic for tasks: ownership scoping,
// goal linkage validation, due-date normalization and lifecycle events.
type TaskService struct {
	taskRepo repositories.TaskRepository
	goalRepo repositories.GoalRepository
	mqClient *rabbitmq.Client
}

// NewTaskService creates a new TaskService. mqClient may be nil, in
// which case lifecycle events are skipped.
func NewTaskService(taskRepo repositories.TaskRepository, goalRepo repositories.GoalRepository, mqClient *rabbitmq.Client) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		goalRepo: goalRepo,
		mqClient: mqClient,
	}
}

// dateOnly strips the time-of-day so due dates compare by calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// checkGoalLinkage verifies that the referenced goal exists and is
// owned by the same user as the task.
func (s *TaskService) checkGoalLinkage(userID, goalID string) error {
	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGoalNotOwned
		}
		return fmt.Errorf("failed to check goal linkage: %w", err)
	}
	if goal.UserID != userID {
		return ErrGoalNotOwned
	}
	return nil
}

// Create creates a task owned by the user. A goal reference must point
// to a goal of the same user.
func (s *TaskService) Create(userID, title, description string, dueDate *time.Time, goalID *string) (*models.Task, error) {
	if goalID != nil {
		if err := s.checkGoalLinkage(userID, *goalID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		Title:       title,
		Description: description,
		UserID:      userID,
		GoalID:      goalID,
	}
	if dueDate != nil {
		d := dateOnly(*dueDate)
		task.DueDate = &d
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}

	s.publishEvent("task.created", task)
	return task, nil
}

// GetByID returns the task. It must belong to the requesting user.
func (s *TaskService) GetByID(userID, taskID string) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrForbidden
	}
	return task, nil
}

// Update applies only the provided fields. A newly provided goal
// reference is validated against the user's goals; a provided empty
// goal id detaches the task. Completing a task publishes an event.
func (s *TaskService) Update(userID, taskID string, update models.TaskUpdate) (*models.Task, error) {
	task, err := s.GetByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	if update.GoalID != nil {
		if *update.GoalID == "" {
			task.GoalID = nil
		} else {
			if err := s.checkGoalLinkage(userID, *update.GoalID); err != nil {
				return nil, err
			}
			goalID := *update.GoalID
			task.GoalID = &goalID
		}
	}
	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.DueDate != nil {
		d := dateOnly(*update.DueDate)
		task.DueDate = &d
	}

	completed := false
	if update.IsCompleted != nil {
		completed = *update.IsCompleted && !task.IsCompleted
		task.IsCompleted = *update.IsCompleted
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, err
	}

	if completed {
		s.publishEvent("task.completed", task)
	}
	return task, nil
}

// Delete removes the task. It must belong to the requesting user.
func (s *TaskService) Delete(userID, taskID string) error {
	if _, err := s.GetByID(userID, taskID); err != nil {
		return err
	}
	return s.taskRepo.Delete(taskID)
}

// ListByDate returns the user's tasks due on the given calendar day.
func (s *TaskService) ListByDate(userID string, date time.Time) ([]models.Task, error) {
	day := dateOnly(date)
	return s.taskRepo.ListByDateRange(userID, day, day)
}

// ListByDateRange returns the user's tasks due between start and end,
// both ends inclusive.
func (s *TaskService) ListByDateRange(userID string, start, end time.Time) ([]models.Task, error) {
	return s.taskRepo.ListByDateRange(userID, dateOnly(start), dateOnly(end))
}

// ListActive returns the user's tasks that are not yet completed.
func (s *TaskService) ListActive(userID string) ([]models.Task, error) {
	return s.taskRepo.ListActive(userID)
}

// publishEvent emits a task lifecycle event. Failures are logged and
// never fail the request; eventing is best effort.
func (s *TaskService) publishEvent(event string, task *models.Task) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"event":   event,
		"task_id": task.ID,
		"user_id": task.UserID,
		"title":   task.Title,
	}
	if task.DueDate != nil {
		payload["due_date"] = task.DueDate.Format("2006-01-02")
	}
	if err := s.mqClient.PublishTaskEvent(payload); err != nil {
		log.Printf("Warning: failed to publish %s event for task %s: %v", event, task.ID, err)
	}
}
