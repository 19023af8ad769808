package repositories

import (
	"fmt"
	"sync"
	"time"

	"goaltrack/internal/models"

	"github.com/google/uuid"
)

// MockTaskRepository is an in-memory implementation of TaskRepository.
type MockTaskRepository struct {
	tasks map[string]models.Task
	mu    sync.RWMutex
}

// NewMockTaskRepository creates a new instance of MockTaskRepository.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{
		tasks: make(map[string]models.Task),
	}
}

// Create adds a new task.
func (r *MockTaskRepository) Create(task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	r.tasks[task.ID] = *task
	return nil
}

// GetByID returns a task by its ID.
func (r *MockTaskRepository) GetByID(id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task with ID %s: %w", id, ErrNotFound)
	}
	return &task, nil
}

// Update modifies an existing task.
func (r *MockTaskRepository) Update(task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return fmt.Errorf("task with ID %s: %w", task.ID, ErrNotFound)
	}
	r.tasks[task.ID] = *task
	return nil
}

// Delete removes a task by its ID.
func (r *MockTaskRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return fmt.Errorf("task with ID %s: %w", id, ErrNotFound)
	}
	delete(r.tasks, id)
	return nil
}

// ListActive returns the user's tasks that are not yet completed.
func (r *MockTaskRepository) ListActive(userID string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID && !t.IsCompleted {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// ListByDateRange returns the user's tasks due between start and end,
// both ends inclusive.
func (r *MockTaskRepository) ListByDateRange(userID string, start, end time.Time) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID != userID || t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(start) || t.DueDate.After(end) {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// ListByGoal returns the user's tasks linked to the given goal.
func (r *MockTaskRepository) ListByGoal(userID, goalID string) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]models.Task, 0)
	for _, t := range r.tasks {
		if t.UserID == userID && t.GoalID != nil && *t.GoalID == goalID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

// deleteByGoal removes every task referencing the given goal. Used by
// MockGoalRepository to mirror the cascading delete.
func (r *MockTaskRepository) deleteByGoal(goalID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.tasks {
		if t.GoalID != nil && *t.GoalID == goalID {
			delete(r.tasks, id)
		}
	}
}
