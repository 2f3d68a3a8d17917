package repositories

import "conduit/internal/models"

// ArticleFilter narrows a listing. All set filters are combined with AND;
// an article matches Tags when it carries any of the supplied tag names.
type ArticleFilter struct {
	Tags        []string
	Author      string // author username
	FavoritedBy string // username of a user who favorited the article
	Limit       int
	Offset      int
}

// ArticleRepository defines the interface for article data access.
// GetBySlug returns (nil, nil) when no article matches.
type ArticleRepository interface {
	// Create persists the article and attaches its tags, creating any tag
	// that does not exist yet.
	Create(article *models.Article, tagNames []string) error
	// Update saves the article's own columns. A non-nil tagNames replaces
	// the tag associations; nil leaves them untouched.
	Update(article *models.Article, tagNames *[]string) error
	// Delete removes the article together with its comments and its
	// favorite/tag join rows.
	Delete(article *models.Article) error
	GetBySlug(slug string) (*models.Article, error)
	// SlugExists reports whether another article (excludeID excepted, when
	// non-empty) already owns the slug.
	SlugExists(slug, excludeID string) (bool, error)
	// AddFavorite records userID as a favoriter and increments the counter
	// in the same transaction. It reports whether a row was actually added.
	AddFavorite(articleID, userID string) (bool, error)
	// RemoveFavorite is the inverse of AddFavorite; the counter never drops
	// below zero.
	RemoveFavorite(articleID, userID string) (bool, error)
	List(filter ArticleFilter) ([]models.Article, int64, error)
	// Feed lists articles authored by users the viewer follows.
	Feed(viewerID string, limit, offset int) ([]models.Article, int64, error)
	ListTagNames() ([]string, error)
}
