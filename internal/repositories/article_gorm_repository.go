package repositories

import (
	"errors"
	"fmt"
	"strings"

	"conduit/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMArticleRepository is a GORM implementation of ArticleRepository.
type GORMArticleRepository struct {
	db *gorm.DB
}

// NewGORMArticleRepository creates a new instance of GORMArticleRepository.
func NewGORMArticleRepository(db *gorm.DB) *GORMArticleRepository {
	return &GORMArticleRepository{
		db: db,
	}
}

// Create persists a new article and its tag associations in one transaction.
func (r *GORMArticleRepository) Create(article *models.Article, tagNames []string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}
		if article.ID == "" {
			article.ID = uuid.New().String()
		}
		if err := tx.Omit(clause.Associations).Create(article).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(article).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}
		article.Tags = tags
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create article: %w", err)
	}
	return nil
}

// Update saves the article's columns and, when tagNames is non-nil, replaces
// its tag associations.
func (r *GORMArticleRepository) Update(article *models.Article, tagNames *[]string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(article).Error; err != nil {
			return err
		}
		if tagNames == nil {
			return nil
		}
		tags, err := resolveTags(tx, *tagNames)
		if err != nil {
			return err
		}
		if err := tx.Model(article).Association("Tags").Replace(&tags); err != nil {
			return err
		}
		article.Tags = tags
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to update article: %w", err)
	}
	return nil
}

// Delete removes the article, its comments and its join rows. Tag rows
// themselves are left in place even when orphaned.
func (r *GORMArticleRepository) Delete(article *models.Article) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", article.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(article).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(article).Association("FavoritedBy").Clear(); err != nil {
			return err
		}
		return tx.Delete(article).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	return nil
}

// GetBySlug loads an article with its author, tags and favoriter set.
func (r *GORMArticleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("FavoritedBy").
		First(&article, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article by slug %s: %w", slug, err)
	}
	return &article, nil
}

// SlugExists reports whether the slug is taken by an article other than excludeID.
func (r *GORMArticleRepository) SlugExists(slug, excludeID string) (bool, error) {
	query := r.db.Model(&models.Article{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug %s: %w", slug, err)
	}
	return count > 0, nil
}

// AddFavorite inserts the favorite row and bumps the counter atomically.
// Favoriting an article the user already favorited is a no-op.
func (r *GORMArticleRepository) AddFavorite(articleID, userID string) (bool, error) {
	added := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Table("article_favorites").
			Where("article_id = ? AND user_id = ?", articleID, userID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		err = tx.Exec(
			"INSERT INTO article_favorites (article_id, user_id) VALUES (?, ?)",
			articleID, userID,
		).Error
		if err != nil {
			return err
		}
		err = tx.Model(&models.Article{}).
			Where("id = ?", articleID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count + 1")).Error
		if err != nil {
			return err
		}
		added = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to favorite article %s: %w", articleID, err)
	}
	return added, nil
}

// RemoveFavorite deletes the favorite row and decrements the counter,
// floored at zero so a concurrent double-unfavorite cannot go negative.
func (r *GORMArticleRepository) RemoveFavorite(articleID, userID string) (bool, error) {
	removed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			"DELETE FROM article_favorites WHERE article_id = ? AND user_id = ?",
			articleID, userID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		err := tx.Model(&models.Article{}).
			Where("id = ? AND favorites_count > 0", articleID).
			UpdateColumn("favorites_count", gorm.Expr("favorites_count - 1")).Error
		if err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to unfavorite article %s: %w", articleID, err)
	}
	return removed, nil
}

// List returns a filtered page of articles, newest first, together with the
// total size of the filtered set before pagination.
func (r *GORMArticleRepository) List(filter ArticleFilter) ([]models.Article, int64, error) {
	var total int64
	if err := r.listQuery(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	var articles []models.Article
	err := r.listQuery(filter).
		Preload("Author").
		Preload("Tags").
		Preload("FavoritedBy").
		Order("articles.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	return articles, total, nil
}

// listQuery builds the filtered base query. It is rebuilt for the count and
// the page fetch so each statement states exactly what it reads.
func (r *GORMArticleRepository) listQuery(filter ArticleFilter) *gorm.DB {
	query := r.db.Model(&models.Article{})

	if filter.Author != "" {
		query = query.
			Joins("JOIN users AS authors ON authors.id = articles.author_id").
			Where("authors.username = ?", filter.Author)
	}
	if len(filter.Tags) > 0 {
		query = query.Where("articles.id IN (?)", r.db.Table("article_tags").
			Select("article_tags.article_id").
			Joins("JOIN tags ON tags.id = article_tags.tag_id").
			Where("tags.name IN ?", filter.Tags))
	}
	if filter.FavoritedBy != "" {
		query = query.Where("articles.id IN (?)", r.db.Table("article_favorites").
			Select("article_favorites.article_id").
			Joins("JOIN users ON users.id = article_favorites.user_id").
			Where("users.username = ?", filter.FavoritedBy))
	}
	return query
}

// Feed returns a page of articles authored by users the viewer follows.
func (r *GORMArticleRepository) Feed(viewerID string, limit, offset int) ([]models.Article, int64, error) {
	var total int64
	if err := r.feedQuery(viewerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count feed articles: %w", err)
	}

	var articles []models.Article
	err := r.feedQuery(viewerID).
		Preload("Author").
		Preload("Tags").
		Preload("FavoritedBy").
		Order("articles.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feed articles: %w", err)
	}
	return articles, total, nil
}

func (r *GORMArticleRepository) feedQuery(viewerID string) *gorm.DB {
	followed := r.db.Model(&models.Follow{}).
		Select("following_id").
		Where("follower_id = ?", viewerID)
	return r.db.Model(&models.Article{}).Where("author_id IN (?)", followed)
}

// ListTagNames returns every tag name ever used, sorted alphabetically.
func (r *GORMArticleRepository) ListTagNames() ([]string, error) {
	var names []string
	err := r.db.Model(&models.Tag{}).Order("name").Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return names, nil
}

// resolveTags maps tag names to Tag rows, creating missing ones. Blank and
// duplicate names are dropped.
func resolveTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var tag models.Tag
		err := tx.Where("name = ?", name).
			Attrs(models.Tag{ID: uuid.New().String()}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %s: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
