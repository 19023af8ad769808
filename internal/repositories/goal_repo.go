package repositories

import "goaltrack/internal/models"

// GoalRepository defines the interface for goal data access.
// Delete removes the goal and every task referencing it as one atomic unit.
type GoalRepository interface {
	Create(goal *models.Goal) error
	GetByID(id string) (*models.Goal, error)
	ListByUser(userID string) ([]models.Goal, error)
	Delete(id string) error
}
