package repositories

import (
	"fmt"
	"sync"

	"goaltrack/internal/models"

	"github.com/google/uuid"
)

// MockGoalRepository is an in-memory implementation of GoalRepository.
// It optionally shares a MockTaskRepository so that deleting a goal
// cascades the same way the GORM implementation does.
type MockGoalRepository struct {
	goals map[string]models.Goal
	tasks *MockTaskRepository
	mu    sync.RWMutex
}

// NewMockGoalRepository creates a new instance of MockGoalRepository.
// taskRepo may be nil when cascade behavior is irrelevant to the caller.
func NewMockGoalRepository(taskRepo *MockTaskRepository) *MockGoalRepository {
	return &MockGoalRepository{
		goals: make(map[string]models.Goal),
		tasks: taskRepo,
	}
}

// Create adds a new goal.
func (r *MockGoalRepository) Create(goal *models.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	r.goals[goal.ID] = *goal
	return nil
}

// GetByID returns a goal by its ID.
func (r *MockGoalRepository) GetByID(id string) (*models.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goal, ok := r.goals[id]
	if !ok {
		return nil, fmt.Errorf("goal with ID %s: %w", id, ErrNotFound)
	}
	return &goal, nil
}

// ListByUser returns all goals owned by the given user.
func (r *MockGoalRepository) ListByUser(userID string) ([]models.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	goals := make([]models.Goal, 0)
	for _, g := range r.goals {
		if g.UserID == userID {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

// Delete removes a goal and, when a task repository is attached, every
// task referencing it.
func (r *MockGoalRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[id]; !ok {
		return fmt.Errorf("goal with ID %s: %w", id, ErrNotFound)
	}
	delete(r.goals, id)
	if r.tasks != nil {
		r.tasks.deleteByGoal(id)
	}
	return nil
}
