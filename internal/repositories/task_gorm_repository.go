package repositories

import (
	"errors"
	"fmt"
	"time"

	"goaltrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTaskRepository is a GORM implementation of TaskRepository.
type GORMTaskRepository struct {
	db *gorm.DB
}

// NewGORMTaskRepository creates a new instance of GORMTaskRepository.
func NewGORMTaskRepository(db *gorm.DB) *GORMTaskRepository {
	return &GORMTaskRepository{
		db: db,
	}
}

// Create inserts a new task. The ID is generated when not supplied.
func (r *GORMTaskRepository) Create(task *models.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// GetByID retrieves a task by its ID.
func (r *GORMTaskRepository) GetByID(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task by ID %s: %w", id, err)
	}
	return &task, nil
}

// Update persists all fields of an existing task, including zero values.
func (r *GORMTaskRepository) Update(task *models.Task) error {
	res := r.db.Save(task)
	if res.Error != nil {
		return fmt.Errorf("failed to update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task with ID %s: %w", task.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a task by its ID.
func (r *GORMTaskRepository) Delete(id string) error {
	res := r.db.Delete(&models.Task{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("task with ID %s: %w", id, ErrNotFound)
	}
	return nil
}

// ListActive retrieves the user's tasks that are not yet completed.
func (r *GORMTaskRepository) ListActive(userID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Find(&tasks, "user_id = ? AND is_completed = ?", userID, false).Error; err != nil {
		return nil, fmt.Errorf("failed to list active tasks for user %s: %w", userID, err)
	}
	return tasks, nil
}

// ListByDateRange retrieves the user's tasks with a due date between
// start and end, both ends inclusive.
func (r *GORMTaskRepository) ListByDateRange(userID string, start, end time.Time) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Find(&tasks, "user_id = ? AND due_date >= ? AND due_date <= ?", userID, start, end).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks by date range for user %s: %w", userID, err)
	}
	return tasks, nil
}

// ListByGoal retrieves the user's tasks linked to the given goal.
func (r *GORMTaskRepository) ListByGoal(userID, goalID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.Find(&tasks, "user_id = ? AND goal_id = ?", userID, goalID).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks by goal %s for user %s: %w", goalID, userID, err)
	}
	return tasks, nil
}
