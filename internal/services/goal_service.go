package services

import (
	"goaltrack/internal/models"
	"goaltrack/internal/repositories"
)

// GoalService handles business logic for goals. Every operation is
// scoped to the requesting user; acting on another user's goal fails
// with ErrForbidden rather than silently succeeding.
type GoalService struct {
	goalRepo repositories.GoalRepository
	taskRepo repositories.TaskRepository
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo repositories.GoalRepository, taskRepo repositories.TaskRepository) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		taskRepo: taskRepo,
	}
}

// ListForUser returns all goals owned by the user.
func (s *GoalService) ListForUser(userID string) ([]models.Goal, error) {
	return s.goalRepo.ListByUser(userID)
}

// Create creates a goal owned by the user.
func (s *GoalService) Create(userID, title, description string) (*models.Goal, error) {
	goal := &models.Goal{
		Title:       title,
		Description: description,
		UserID:      userID,
	}
	if err := s.goalRepo.Create(goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Delete removes the goal and cascades to its tasks. The goal must
// belong to the requesting user.
func (s *GoalService) Delete(userID, goalID string) error {
	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return err
	}
	if goal.UserID != userID {
		return ErrForbidden
	}
	return s.goalRepo.Delete(goalID)
}

// ListTasks returns the user's tasks under the given goal. The goal
// must exist and belong to the requesting user.
func (s *GoalService) ListTasks(userID, goalID string) ([]models.Task, error) {
	goal, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrForbidden
	}
	return s.taskRepo.ListByGoal(userID, goalID)
}
