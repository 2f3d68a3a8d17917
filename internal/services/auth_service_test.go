package services_test

import (
	"log"
	"os"
	"testing"
	"time"

	"conduit/internal/models"
	"conduit/internal/repositories"
	"conduit/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

const testJWTSecret = "test_jwt_secret"

func newAuthService(repo repositories.UserRepository) *services.AuthService {
	return services.NewAuthService(repo, nil, testJWTSecret, time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByEmail", "alice@example.com").Return(nil, nil).Once()
	mockRepo.On("GetByUsername", "alice").Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once().Run(func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = "user-1"
	})

	user, token, err := authService.Register("alice@example.com", "alice", "password123")

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)
	// The stored password must be a bcrypt hash of the input, never the input.
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByEmail", "alice@example.com").
		Return(&models.User{ID: "user-1", Email: "alice@example.com"}, nil).Once()

	user, token, err := authService.Register("alice@example.com", "someone", "password123")

	assert.ErrorIs(t, err, services.ErrUserExists)
	assert.Nil(t, user)
	assert.Empty(t, token)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByEmail", "new@example.com").Return(nil, nil).Once()
	mockRepo.On("GetByUsername", "alice").
		Return(&models.User{ID: "user-1", Username: "alice"}, nil).Once()

	_, _, err := authService.Register("new@example.com", "alice", "password123")

	assert.ErrorIs(t, err, services.ErrUserExists)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_LostInsertRace(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByEmail", "alice@example.com").Return(nil, nil).Once()
	mockRepo.On("GetByUsername", "alice").Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).
		Return(repositories.ErrDuplicateKey).Once()

	_, _, err := authService.Register("alice@example.com", "alice", "password123")

	assert.ErrorIs(t, err, services.ErrUserExists)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &models.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		Password: string(hashed),
	}
	mockRepo.On("GetByEmail", "alice@example.com").Return(stored, nil).Once()

	user, token, err := authService.Login("alice@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.NotEmpty(t, token)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stored := &models.User{ID: "user-1", Email: "alice@example.com", Password: string(hashed)}
	mockRepo.On("GetByEmail", "alice@example.com").Return(stored, nil).Once()

	_, _, err := authService.Login("alice@example.com", "wrong-password")

	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, nil).Once()

	_, _, err := authService.Login("nobody@example.com", "password123")

	// Unknown email and wrong password collapse into the same error.
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	user := &models.User{ID: "user-1", Username: "alice", Email: "alice@example.com"}
	token, err := authService.IssueToken(user)
	assert.NoError(t, err)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, "alice", claims["username"])
	assert.Greater(t, claims["exp"].(float64), float64(time.Now().Unix()))
}

func TestAuthService_ValidateToken_WrongSecret(t *testing.T) {
	user := &models.User{ID: "user-1", Username: "alice"}

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	forgedString, err := forged.SignedString([]byte("some-other-secret"))
	assert.NoError(t, err)

	authService := newAuthService(new(MockUserRepository))
	_, err = authService.ValidateToken(forgedString)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, nil, testJWTSecret, -time.Hour)

	token, err := authService.IssueToken(&models.User{ID: "user-1", Username: "alice"})
	assert.NoError(t, err)

	_, err = authService.ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_GetProfile_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newAuthService(mockRepo)

	mockRepo.On("GetByID", "gone").Return(nil, nil).Once()

	_, err := authService.GetProfile("gone")
	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockRepo.AssertExpectations(t)
}
