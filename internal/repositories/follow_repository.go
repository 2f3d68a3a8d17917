package repositories

import (
	"fmt"

	"conduit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for the follower/following relation.
// Create and Delete are idempotent: repeating either is a no-op success.
type FollowRepository interface {
	Create(followerID, followingID string) error
	Delete(followerID, followingID string) error
	Exists(followerID, followingID string) (bool, error)
}

// GORMFollowRepository is a GORM implementation of FollowRepository.
type GORMFollowRepository struct {
	db *gorm.DB
}

// NewGORMFollowRepository creates a new instance of GORMFollowRepository.
func NewGORMFollowRepository(db *gorm.DB) *GORMFollowRepository {
	return &GORMFollowRepository{
		db: db,
	}
}

// Create inserts the follow edge. A concurrent duplicate insert hits the
// composite primary key and is swallowed by the ON CONFLICT clause.
func (r *GORMFollowRepository) Create(followerID, followingID string) error {
	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow).Error
	if err != nil {
		return fmt.Errorf("failed to create follow edge: %w", err)
	}
	return nil
}

// Delete removes the follow edge if it exists.
func (r *GORMFollowRepository) Delete(followerID, followingID string) error {
	err := r.db.
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}
	return nil
}

// Exists reports whether followerID currently follows followingID.
func (r *GORMFollowRepository) Exists(followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}
	return count > 0, nil
}
