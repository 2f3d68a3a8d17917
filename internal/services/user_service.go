package services

import (
	"errors"
	"fmt"

	"conduit/internal/models"
	"conduit/internal/repositories"
)

// UserService handles profile updates and the follower/following relation.
type UserService struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// UpdateProfileInput carries the optional profile fields; nil means unchanged.
type UpdateProfileInput struct {
	Username *string
	Bio      *string
	Image    *string
}

// UpdateProfile patches the user's own profile. Changing the username to one
// another user holds returns ErrUsernameTaken.
func (s *UserService) UpdateProfile(userID string, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.Username != nil && *input.Username != user.Username {
		existing, err := s.userRepo.GetByUsername(*input.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUsernameTaken
		}
		user.Username = *input.Username
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Image != nil {
		user.Image = *input.Image
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// GetProfile returns the user behind username and whether viewerID follows
// them. An anonymous viewer (empty viewerID) is never following.
func (s *UserService) GetProfile(username, viewerID string) (*models.User, bool, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, ErrUserNotFound
	}

	following := false
	if viewerID != "" {
		following, err = s.followRepo.Exists(viewerID, user.ID)
		if err != nil {
			return nil, false, err
		}
	}
	return user, following, nil
}

// Follow makes followerID follow the user behind username. Following an
// already-followed user is a no-op success; following yourself is rejected.
func (s *UserService) Follow(followerID, username string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}
	if target.ID == followerID {
		return nil, ErrSelfFollow
	}

	if err := s.followRepo.Create(followerID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

// Unfollow removes the follow edge; unfollowing a non-followed user is a
// no-op success.
func (s *UserService) Unfollow(followerID, username string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	if err := s.followRepo.Delete(followerID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

// IsFollowing reports whether followerID follows targetID.
func (s *UserService) IsFollowing(followerID, targetID string) (bool, error) {
	return s.followRepo.Exists(followerID, targetID)
}
