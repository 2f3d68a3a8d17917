package repositories

import (
	"errors"
	"fmt"

	"conduit/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// Create persists a new comment.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Omit(clause.Associations).Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment by ID, scoped to the given article.
func (r *GORMCommentRepository) GetByID(id, articleID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.
		Preload("Author").
		First(&comment, "id = ? AND article_id = ?", id, articleID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comment %s: %w", id, err)
	}
	return &comment, nil
}

// ListByArticle returns a page of an article's comments, newest first, and
// the article's total comment count.
func (r *GORMCommentRepository) ListByArticle(articleID string, limit, offset int) ([]models.Comment, int64, error) {
	var total int64
	err := r.db.Model(&models.Comment{}).
		Where("article_id = ?", articleID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count comments: %w", err)
	}

	var comments []models.Comment
	err = r.db.
		Preload("Author").
		Where("article_id = ?", articleID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, total, nil
}

// Delete removes a comment.
func (r *GORMCommentRepository) Delete(comment *models.Comment) error {
	if err := r.db.Delete(comment).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
