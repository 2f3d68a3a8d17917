package repositories

import "conduit/internal/models"

// CommentRepository defines the interface for comment data access.
// GetByID scopes the lookup to a single article and returns (nil, nil) when
// no comment matches.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id, articleID string) (*models.Comment, error)
	ListByArticle(articleID string, limit, offset int) ([]models.Comment, int64, error)
	Delete(comment *models.Comment) error
}
