package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"conduit/internal/models"
	"conduit/internal/repositories"
	"conduit/pkg/rabbitmq"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators   = regexp.MustCompile(`[\s_-]+`)
	slugEdgeHyphens  = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a URL slug from a title: lowercase, strip characters
// outside word/space/hyphen, collapse separator runs into a single hyphen
// and trim hyphens from both ends. Applying it to its own output changes
// nothing.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSeparators.ReplaceAllString(slug, "-")
	slug = slugEdgeHyphens.ReplaceAllString(slug, "")
	return slug
}

// ArticleService handles business logic for articles, tags and favorites.
type ArticleService struct {
	articleRepo repositories.ArticleRepository
	mqClient    *rabbitmq.Client
}

// NewArticleService creates a new ArticleService. mqClient may be nil; event
// publication is then skipped.
func NewArticleService(articleRepo repositories.ArticleRepository, mqClient *rabbitmq.Client) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		mqClient:    mqClient,
	}
}

// CreateArticleInput carries the fields of a new article.
type CreateArticleInput struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// UpdateArticleInput carries the optional patch fields; nil means unchanged.
type UpdateArticleInput struct {
	Title       *string
	Description *string
	Body        *string
	TagList     *[]string
}

// ensureUniqueSlug probes base, base-1, base-2, ... until a slug no other
// article owns is found. excludeID removes the article itself from the
// collision check so re-saving its own slug is not a conflict.
//
// The probe is a read-then-write with no cross-request lock; a concurrent
// create can still win the slug, in which case the storage unique index
// rejects the insert and the caller surfaces ErrSlugConflict.
func (s *ArticleService) ensureUniqueSlug(base, excludeID string) (string, error) {
	slug := base
	for counter := 1; ; counter++ {
		exists, err := s.articleRepo.SlugExists(slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

// Create stores a new article authored by author, deriving a unique slug
// from its title. A nil tag list becomes an empty one.
func (s *ArticleService) Create(input CreateArticleInput, author *models.User) (*models.Article, error) {
	slug, err := s.ensureUniqueSlug(Slugify(input.Title), "")
	if err != nil {
		return nil, err
	}

	tagList := input.TagList
	if tagList == nil {
		tagList = []string{}
	}

	article := &models.Article{
		Slug:        slug,
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		AuthorID:    author.ID,
	}
	if err := s.articleRepo.Create(article, tagList); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}
	article.Author = *author

	s.publishEvent("article.created", map[string]interface{}{
		"articleID": article.ID,
		"slug":      article.Slug,
		"authorID":  article.AuthorID,
	})

	return article, nil
}

// GetBySlug returns the article with its author, tags and favoriter set, or
// (nil, nil) when no article owns the slug.
func (s *ArticleService) GetBySlug(slug string) (*models.Article, error) {
	return s.articleRepo.GetBySlug(slug)
}

// Update patches an article. It returns (nil, nil) when the article does not
// exist or userID is not its author; the caller disambiguates by re-querying
// GetBySlug. A changed title regenerates the slug.
func (s *ArticleService) Update(slug, userID string, input UpdateArticleInput) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if article == nil || article.AuthorID != userID {
		return nil, nil
	}

	if input.Title != nil {
		if *input.Title != article.Title {
			newSlug, err := s.ensureUniqueSlug(Slugify(*input.Title), article.ID)
			if err != nil {
				return nil, err
			}
			article.Slug = newSlug
		}
		article.Title = *input.Title
	}
	if input.Description != nil {
		article.Description = *input.Description
	}
	if input.Body != nil {
		article.Body = *input.Body
	}

	if err := s.articleRepo.Update(article, input.TagList); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrSlugConflict
		}
		return nil, err
	}
	return article, nil
}

// Delete removes an article, cascading its comments and releasing its
// favorite/tag join rows. It returns false under the same
// not-found-or-not-author conditions as Update.
func (s *ArticleService) Delete(slug, userID string) (bool, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil {
		return false, err
	}
	if article == nil || article.AuthorID != userID {
		return false, nil
	}
	if err := s.articleRepo.Delete(article); err != nil {
		return false, err
	}
	return true, nil
}

// Favorite adds userID to the article's favoriter set, incrementing the
// counter exactly once. Favoriting twice is a no-op. Returns (nil, nil) when
// the article does not exist.
func (s *ArticleService) Favorite(slug, userID string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil || article == nil {
		return nil, err
	}
	if _, err := s.articleRepo.AddFavorite(article.ID, userID); err != nil {
		return nil, err
	}
	// Re-read so the returned set and counter reflect the mutation.
	return s.articleRepo.GetBySlug(slug)
}

// Unfavorite removes userID from the favoriter set; the counter never drops
// below zero. Returns (nil, nil) when the article does not exist.
func (s *ArticleService) Unfavorite(slug, userID string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(slug)
	if err != nil || article == nil {
		return nil, err
	}
	if _, err := s.articleRepo.RemoveFavorite(article.ID, userID); err != nil {
		return nil, err
	}
	return s.articleRepo.GetBySlug(slug)
}

// List returns a filtered, paginated page of articles, newest first, and the
// total size of the filtered set.
func (s *ArticleService) List(filter repositories.ArticleFilter) ([]models.Article, int64, error) {
	filter.Limit, filter.Offset = clampPage(filter.Limit, filter.Offset)
	return s.articleRepo.List(filter)
}

// Feed returns articles authored by users the viewer follows, newest first.
func (s *ArticleService) Feed(viewerID string, limit, offset int) ([]models.Article, int64, error) {
	limit, offset = clampPage(limit, offset)
	return s.articleRepo.Feed(viewerID, limit, offset)
}

// Tags lists every tag name in use, sorted alphabetically.
func (s *ArticleService) Tags() ([]string, error) {
	return s.articleRepo.ListTagNames()
}

// clampPage applies the pagination defaults: limit 20 bounded to [1,100],
// offset at least 0.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *ArticleService) publishEvent(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
