package services

import (
	"errors"
	"fmt"

	"goaltrack/internal/models"
	"goaltrack/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles profile reads and edits for the authenticated user.
type UserService struct {
	userRepo repositories.UserRepository
	goalRepo repositories.GoalRepository
	taskRepo repositories.TaskRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, goalRepo repositories.GoalRepository, taskRepo repositories.TaskRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		goalRepo: goalRepo,
		taskRepo: taskRepo,
	}
}

// Profile bundles the user record with their goals and active tasks,
// which is what the profile page shows.
type Profile struct {
	User  models.User   `json:"user"`
	Goals []models.Goal `json:"goals"`
	Tasks []models.Task `json:"tasks"`
}

// GetProfile returns the user together with their goals and tasks
// that are not yet completed.
func (s *UserService) GetProfile(userID string) (*Profile, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	goals, err := s.goalRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListActive(userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: *user, Goals: goals, Tasks: tasks}
	profile.User.Password = ""
	return profile, nil
}

// UpdateProfile applies only the provided fields. Changing the email
// to one held by another user fails with ErrDuplicateEmail.
func (s *UserService) UpdateProfile(userID string, update models.UserUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != user.Email {
		if other, err := s.userRepo.GetByEmail(*update.Email); err == nil && other != nil && other.ID != userID {
			return nil, ErrDuplicateEmail
		} else if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		user.Email = *update.Email
	}
	if update.Name != nil {
		user.Name = *update.Name
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	updated := *user
	updated.Password = ""
	return &updated, nil
}

// UpdatePassword replaces the stored hash. The old password is not
// checked; callers reach this operation already authenticated.
func (s *UserService) UpdatePassword(userID, newRawPassword string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newRawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	updated := *user
	updated.Password = ""
	return &updated, nil
}
