package repositories

import "conduit/internal/models"

// UserRepository defines the interface for user data access.
// Lookup methods return (nil, nil) when no user matches, so callers can
// distinguish absence from storage failures.
type UserRepository interface {
	Create(user *models.User) error
	Update(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
