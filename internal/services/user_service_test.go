package services_test

import (
	"testing"

	"conduit/internal/models"
	"conduit/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFollowRepository is a mock implementation of repositories.FollowRepository
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(followerID, followingID string) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(followerID, followingID string) error {
	args := m.Called(followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) Exists(followerID, followingID string) (bool, error) {
	args := m.Called(followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func TestUserService_UpdateProfile(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)
	userService := services.NewUserService(mockUsers, mockFollows)

	stored := &models.User{ID: "user-1", Username: "alice", Bio: "old bio"}
	mockUsers.On("GetByID", "user-1").Return(stored, nil).Once()
	mockUsers.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	bio := "new bio"
	image := "https://example.com/alice.png"
	user, err := userService.UpdateProfile("user-1", services.UpdateProfileInput{Bio: &bio, Image: &image})

	assert.NoError(t, err)
	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, "https://example.com/alice.png", user.Image)
	// Username stays untouched when not supplied.
	assert.Equal(t, "alice", user.Username)
	mockUsers.AssertExpectations(t)
}

func TestUserService_UpdateProfile_UsernameTaken(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)
	userService := services.NewUserService(mockUsers, mockFollows)

	stored := &models.User{ID: "user-1", Username: "alice"}
	mockUsers.On("GetByID", "user-1").Return(stored, nil).Once()
	mockUsers.On("GetByUsername", "bob").
		Return(&models.User{ID: "user-2", Username: "bob"}, nil).Once()

	taken := "bob"
	_, err := userService.UpdateProfile("user-1", services.UpdateProfileInput{Username: &taken})

	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockUsers.AssertExpectations(t)
}

func TestUserService_UpdateProfile_SameUsernameIsNoConflict(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)
	userService := services.NewUserService(mockUsers, mockFollows)

	stored := &models.User{ID: "user-1", Username: "alice"}
	mockUsers.On("GetByID", "user-1").Return(stored, nil).Once()
	mockUsers.On("Update", mock.AnythingOfType("*models.User")).Return(nil).Once()

	same := "alice"
	user, err := userService.UpdateProfile("user-1", services.UpdateProfileInput{Username: &same})

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	mockUsers.AssertExpectations(t)
	mockUsers.AssertNotCalled(t, "GetByUsername", "alice")
}

func TestUserService_GetProfile_AnonymousViewer(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)
	userService := services.NewUserService(mockUsers, mockFollows)

	stored := &models.User{ID: "user-1", Username: "alice"}
	mockUsers.On("GetByUsername", "alice").Return(stored, nil).Once()

	user, following, err := userService.GetProfile("alice", "")

	assert.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.False(t, following)
	mockFollows.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
}

func TestUserService_GetProfile_FollowingViewer(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)
	userService := services.NewUserService(mockUsers, mockFollows)

	stored := &models.User{ID: "user-1", Username: "alice"}
	mockUsers.On("GetByUsername", "alice").Return(stored, nil).Once()
	mockFollows.On("Exists", "user-2", "user-1").Return(true, nil).Once()

	_, following, err := userService.GetProfile("alice", "user-2")

	assert.NoError(t, err)
	assert.True(t, following)
	mockFollows.AssertExpectations(t)
}

func TestUserService_Follow(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)
	userService := services.NewUserService(mockUsers, mockFollows)

	target := &models.User{ID: "user-1", Username: "alice"}
	mockUsers.On("GetByUsername", "alice").Return(target, nil).Once()
	mockFollows.On("Create", "user-2", "user-1").Return(nil).Once()

	followed, err := userService.Follow("user-2", "alice")

	assert.NoError(t, err)
	assert.Equal(t, "alice", followed.Username)
	mockFollows.AssertExpectations(t)
}

func TestUserService_Follow_Self(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)
	userService := services.NewUserService(mockUsers, mockFollows)

	self := &models.User{ID: "user-1", Username: "alice"}
	mockUsers.On("GetByUsername", "alice").Return(self, nil).Once()

	_, err := userService.Follow("user-1", "alice")

	assert.ErrorIs(t, err, services.ErrSelfFollow)
	mockFollows.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Follow_UnknownTarget(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)
	userService := services.NewUserService(mockUsers, mockFollows)

	mockUsers.On("GetByUsername", "ghost").Return(nil, nil).Once()

	_, err := userService.Follow("user-1", "ghost")

	assert.ErrorIs(t, err, services.ErrUserNotFound)
	mockUsers.AssertExpectations(t)
}

func TestUserService_Unfollow_NotFollowed(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockFollows := new(MockFollowRepository)
	userService := services.NewUserService(mockUsers, mockFollows)

	target := &models.User{ID: "user-1", Username: "alice"}
	mockUsers.On("GetByUsername", "alice").Return(target, nil).Once()
	mockFollows.On("Delete", "user-2", "user-1").Return(nil).Once()

	// Unfollowing without a prior follow is still a success.
	unfollowed, err := userService.Unfollow("user-2", "alice")

	assert.NoError(t, err)
	assert.Equal(t, "alice", unfollowed.Username)
	mockFollows.AssertExpectations(t)
}
