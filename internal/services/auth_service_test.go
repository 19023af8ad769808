package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"goaltrack/internal/models"
	"goaltrack/internal/repositories"
	"goaltrack/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a testify mock of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func notFoundErr(email string) error {
	return fmt.Errorf("user with email %s: %w", email, repositories.ErrNotFound)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", 15*time.Minute)

	mockRepo.On("GetByEmail", "alice@example.com").Return(nil, notFoundErr("alice@example.com")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register("Alice", "alice@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	// The returned user must never carry any form of the password.
	assert.Empty(t, user.Password)
	mockRepo.AssertExpectations(t)

	// The repository must have received a bcrypt hash, not the raw password.
	created := mockRepo.Calls[1].Arguments.Get(0).(*models.User)
	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))

	// Registering the same email again fails with a conflict.
	mockRepo.On("GetByEmail", "alice@example.com").Return(&models.User{ID: "user-1"}, nil).Once()
	_, err = authService.Register("Alice", "alice@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrDuplicateEmail)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", 15*time.Minute)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: string(hashed),
	}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, err := authService.Login(user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte("test_jwt_secret"), nil
	})
	assert.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", 15*time.Minute)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{ID: "user-123", Email: "alice@example.com", Password: string(hashed)}

	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, wrongPassErr := authService.Login(user.Email, "wrongpassword")

	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFoundErr("nobody@example.com")).Once()
	_, unknownEmailErr := authService.Login("nobody@example.com", "password123")

	// Wrong password and unknown email yield the exact same error, so
	// a caller cannot probe which emails are registered.
	assert.ErrorIs(t, wrongPassErr, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPassErr, unknownEmailErr)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", time.Minute)

	sign := func(secret string, claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, err := token.SignedString([]byte(secret))
		assert.NoError(t, err)
		return s
	}

	t.Run("Valid", func(t *testing.T) {
		tokenStr := sign("test_jwt_secret", jwt.MapClaims{
			"user_id": "user-123",
			"exp":     time.Now().Add(time.Minute).Unix(),
		})
		userID, err := authService.ValidateToken(tokenStr)
		assert.NoError(t, err)
		assert.Equal(t, "user-123", userID)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := authService.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		tokenStr := sign("some_other_secret", jwt.MapClaims{
			"user_id": "user-123",
			"exp":     time.Now().Add(time.Minute).Unix(),
		})
		_, err := authService.ValidateToken(tokenStr)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Expired", func(t *testing.T) {
		// A one-minute token presented two minutes after issuance.
		tokenStr := sign("test_jwt_secret", jwt.MapClaims{
			"user_id": "user-123",
			"iat":     time.Now().Add(-2 * time.Minute).Unix(),
			"exp":     time.Now().Add(-time.Minute).Unix(),
		})
		_, err := authService.ValidateToken(tokenStr)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("MissingUserID", func(t *testing.T) {
		tokenStr := sign("test_jwt_secret", jwt.MapClaims{
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		_, err := authService.ValidateToken(tokenStr)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})
}

func TestAuthService_TokenResolvesToIssuedUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret", 15*time.Minute)

	passA, _ := bcrypt.GenerateFromPassword([]byte("pw-alice"), bcrypt.DefaultCost)
	passB, _ := bcrypt.GenerateFromPassword([]byte("pw-bob"), bcrypt.DefaultCost)
	alice := &models.User{ID: "user-a", Email: "a@x.com", Password: string(passA)}
	bob := &models.User{ID: "user-b", Email: "b@x.com", Password: string(passB)}

	mockRepo.On("GetByEmail", alice.Email).Return(alice, nil).Once()
	mockRepo.On("GetByEmail", bob.Email).Return(bob, nil).Once()

	tokenA, err := authService.Login(alice.Email, "pw-alice")
	assert.NoError(t, err)
	tokenB, err := authService.Login(bob.Email, "pw-bob")
	assert.NoError(t, err)

	idA, err := authService.ValidateToken(tokenA)
	assert.NoError(t, err)
	idB, err := authService.ValidateToken(tokenB)
	assert.NoError(t, err)

	assert.Equal(t, alice.ID, idA)
	assert.Equal(t, bob.ID, idB)
	assert.NotEqual(t, idA, idB)
	mockRepo.AssertExpectations(t)
}
