package services_test

import (
	"testing"
	"time"

	"goaltrack/internal/models"
	"goaltrack/internal/repositories"
	"goaltrack/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserFixture(t *testing.T) (*services.UserService, *services.AuthService, *repositories.MockUserRepository) {
	t.Helper()
	userRepo := repositories.NewMockUserRepository()
	taskRepo := repositories.NewMockTaskRepository()
	goalRepo := repositories.NewMockGoalRepository(taskRepo)
	userSvc := services.NewUserService(userRepo, goalRepo, taskRepo)
	authSvc := services.NewAuthService(userRepo, "test_jwt_secret", 15*time.Minute)
	return userSvc, authSvc, userRepo
}

func TestUserService_GetProfile(t *testing.T) {
	userSvc, authSvc, _ := newUserFixture(t)

	user, err := authSvc.Register("Alice", "a@x.com", "password123")
	require.NoError(t, err)

	profile, err := userSvc.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", profile.User.Name)
	assert.Empty(t, profile.User.Password)
	assert.Empty(t, profile.Goals)
	assert.Empty(t, profile.Tasks)

	_, err = userSvc.GetProfile("no-such-user")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserService_PartialProfileUpdate(t *testing.T) {
	userSvc, authSvc, _ := newUserFixture(t)

	user, err := authSvc.Register("Alice", "a@x.com", "password123")
	require.NoError(t, err)

	newName := "Alice B."
	updated, err := userSvc.UpdateProfile(user.ID, models.UserUpdate{Name: &newName})
	require.NoError(t, err)

	// Only the provided field changed.
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, "a@x.com", updated.Email)
	assert.Empty(t, updated.Password)
}

func TestUserService_UpdateProfileEmailConflict(t *testing.T) {
	userSvc, authSvc, _ := newUserFixture(t)

	alice, err := authSvc.Register("Alice", "a@x.com", "password123")
	require.NoError(t, err)
	_, err = authSvc.Register("Bob", "b@x.com", "password123")
	require.NoError(t, err)

	taken := "b@x.com"
	_, err = userSvc.UpdateProfile(alice.ID, models.UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)

	// Re-submitting the current email is not a conflict.
	same := "a@x.com"
	updated, err := userSvc.UpdateProfile(alice.ID, models.UserUpdate{Email: &same})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", updated.Email)
}

func TestUserService_UpdatePassword(t *testing.T) {
	userSvc, authSvc, userRepo := newUserFixture(t)

	user, err := authSvc.Register("Alice", "a@x.com", "oldpassword")
	require.NoError(t, err)

	updated, err := userSvc.UpdatePassword(user.ID, "newpassword")
	require.NoError(t, err)
	assert.Empty(t, updated.Password)

	// The stored hash verifies against the new password only.
	stored, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpassword")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("oldpassword")))

	// Login works with the new password and rejects the old one.
	_, err = authSvc.Login("a@x.com", "newpassword")
	assert.NoError(t, err)
	_, err = authSvc.Login("a@x.com", "oldpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
