package repositories

import (
	"time"

	"goaltrack/internal/models"
)

// TaskRepository defines the interface for task data access.
// Every list operation filters by the owning user first; ordering
// is not guaranteed.
type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id string) (*models.Task, error)
	Update(task *models.Task) error
	Delete(id string) error
	ListActive(userID string) ([]models.Task, error)
	ListByDateRange(userID string, start, end time.Time) ([]models.Task, error)
	ListByGoal(userID, goalID string) ([]models.Task, error)
}
