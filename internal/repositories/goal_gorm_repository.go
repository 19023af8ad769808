package repositories

import (
	"errors"
	"fmt"

	"goaltrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMGoalRepository is a GORM implementation of GoalRepository.
type GORMGoalRepository struct {
	db *gorm.DB
}

// NewGORMGoalRepository creates a new instance of GORMGoalRepository.
func NewGORMGoalRepository(db *gorm.DB) *GORMGoalRepository {
	return &GORMGoalRepository{
		db: db,
	}
}

// Create inserts a new goal. The ID is generated when not supplied.
func (r *GORMGoalRepository) Create(goal *models.Goal) error {
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	if err := r.db.Create(goal).Error; err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}
	return nil
}

// GetByID retrieves a goal by its ID.
func (r *GORMGoalRepository) GetByID(id string) (*models.Goal, error) {
	var goal models.Goal
	if err := r.db.First(&goal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("goal with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal by ID %s: %w", id, err)
	}
	return &goal, nil
}

// ListByUser retrieves all goals owned by the given user.
func (r *GORMGoalRepository) ListByUser(userID string) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.Find(&goals, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to list goals for user %s: %w", userID, err)
	}
	return goals, nil
}

// Delete removes a goal and all tasks referencing it in a single
// transaction, so a partially cascaded delete is never visible.
func (r *GORMGoalRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Task{}, "goal_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete tasks of goal %s: %w", id, err)
		}
		res := tx.Delete(&models.Goal{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete goal %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("goal with ID %s: %w", id, ErrNotFound)
		}
		return nil
	})
}
