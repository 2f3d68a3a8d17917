package handlers

import (
	"errors"
	"log"

	"conduit/internal/repositories"
	"conduit/internal/services"
	"conduit/pkg/translator"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ArticleHandler handles the article CRUD, listing, feed, favorites and tag
// endpoints.
type ArticleHandler struct {
	articleService *services.ArticleService
	authService    *services.AuthService
	validate       *validator.Validate
	tr             *translator.Translator
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService *services.ArticleService, authService *services.AuthService, tr *translator.Translator) *ArticleHandler {
	validate := validator.New()
	if err := tr.RegisterValidationMessages(validate); err != nil {
		log.Printf("Warning: could not register validation messages: %v", err)
	}
	return &ArticleHandler{
		articleService: articleService,
		authService:    authService,
		validate:       validate,
		tr:             tr,
	}
}

// RegisterRoutes registers the article and tag endpoints on the router.
// "/feed" must be registered before "/:slug" so it is not captured as a slug.
func (h *ArticleHandler) RegisterRoutes(router fiber.Router, auth, optionalAuth fiber.Handler) {
	router.Get("/tags", h.HandleListTags)

	articles := router.Group("/articles")
	articles.Post("/", auth, h.HandleCreate)
	articles.Get("/", optionalAuth, h.HandleList)
	articles.Get("/feed", auth, h.HandleFeed)
	articles.Get("/:slug", optionalAuth, h.HandleGet)
	articles.Put("/:slug", auth, h.HandleUpdate)
	articles.Delete("/:slug", auth, h.HandleDelete)
	articles.Post("/:slug/favorite", auth, h.HandleFavorite)
	articles.Delete("/:slug/favorite", auth, h.HandleUnfavorite)
}

// CreateArticleRequest is the payload for publishing a new article.
type CreateArticleRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=255"`
	Description string   `json:"description" validate:"required,max=500"`
	Body        string   `json:"body" validate:"required"`
	TagList     []string `json:"tagList" validate:"omitempty,dive,min=1,max=100"`
}

// UpdateArticleRequest carries the optional article fields; absent fields
// stay unchanged.
type UpdateArticleRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=5,max=255"`
	Description *string   `json:"description" validate:"omitempty,max=500"`
	Body        *string   `json:"body" validate:"omitempty,min=1"`
	TagList     *[]string `json:"tagList" validate:"omitempty,dive,min=1,max=100"`
}

// HandleCreate publishes a new article for the authenticated user.
func (h *ArticleHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return validationErrorResponse(c, h.tr, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, h.tr, err)
	}

	author, err := h.authService.GetProfile(currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return messageResponse(c, h.tr, fiber.StatusUnauthorized, "auth.errors.invalid_token")
		}
		log.Printf("Error resolving author: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	input := services.CreateArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		TagList:     req.TagList,
	}
	article, err := h.articleService.Create(input, author)
	if err != nil {
		if errors.Is(err, services.ErrSlugConflict) {
			return messageResponse(c, h.tr, fiber.StatusConflict, "articles.slug_conflict")
		}
		log.Printf("Error creating article: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"article": NewArticleResponse(article, author.ID),
	})
}

// HandleList returns a filtered, paginated page of articles, newest first.
func (h *ArticleHandler) HandleList(c *fiber.Ctx) error {
	filter := repositories.ArticleFilter{
		Tags:        queryTags(c),
		Author:      c.Query("author"),
		FavoritedBy: c.Query("favorited"),
		Limit:       c.QueryInt("limit"),
		Offset:      c.QueryInt("offset"),
	}

	articles, total, err := h.articleService.List(filter)
	if err != nil {
		log.Printf("Error listing articles: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"articles":      NewArticleListResponse(articles, currentUserID(c)),
		"articlesCount": total,
	})
}

// HandleFeed returns articles authored by users the viewer follows.
func (h *ArticleHandler) HandleFeed(c *fiber.Ctx) error {
	viewerID := currentUserID(c)
	articles, total, err := h.articleService.Feed(viewerID, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		log.Printf("Error building feed: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"articles":      NewArticleListResponse(articles, viewerID),
		"articlesCount": total,
	})
}

// HandleGet returns a single article by slug.
func (h *ArticleHandler) HandleGet(c *fiber.Ctx) error {
	article, err := h.articleService.GetBySlug(c.Params("slug"))
	if err != nil {
		log.Printf("Error fetching article: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}
	if article == nil {
		return messageResponse(c, h.tr, fiber.StatusNotFound, "articles.article_not_found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"article": NewArticleResponse(article, currentUserID(c)),
	})
}

// HandleUpdate patches an article. Only the author may update; anyone else
// gets 403 and a missing slug gets 404.
func (h *ArticleHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateArticleRequest
	if err := c.BodyParser(&req); err != nil {
		return validationErrorResponse(c, h.tr, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, h.tr, err)
	}

	slug := c.Params("slug")
	viewerID := currentUserID(c)
	input := services.UpdateArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		TagList:     req.TagList,
	}
	article, err := h.articleService.Update(slug, viewerID, input)
	if err != nil {
		if errors.Is(err, services.ErrSlugConflict) {
			return messageResponse(c, h.tr, fiber.StatusConflict, "articles.slug_conflict")
		}
		log.Printf("Error updating article: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}
	if article == nil {
		return h.notFoundOrForbidden(c, slug)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"article": NewArticleResponse(article, viewerID),
	})
}

// HandleDelete removes an article, its comments and its join rows. Only the
// author may delete.
func (h *ArticleHandler) HandleDelete(c *fiber.Ctx) error {
	slug := c.Params("slug")
	deleted, err := h.articleService.Delete(slug, currentUserID(c))
	if err != nil {
		log.Printf("Error deleting article: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}
	if !deleted {
		return h.notFoundOrForbidden(c, slug)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleFavorite marks the article as favorited by the viewer. Favoriting
// twice leaves the count unchanged.
func (h *ArticleHandler) HandleFavorite(c *fiber.Ctx) error {
	viewerID := currentUserID(c)
	article, err := h.articleService.Favorite(c.Params("slug"), viewerID)
	if err != nil {
		log.Printf("Error favoriting article: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}
	if article == nil {
		return messageResponse(c, h.tr, fiber.StatusNotFound, "articles.article_not_found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"article": NewArticleResponse(article, viewerID),
	})
}

// HandleUnfavorite removes the viewer's favorite; removing a favorite that
// was never set leaves the count unchanged.
func (h *ArticleHandler) HandleUnfavorite(c *fiber.Ctx) error {
	viewerID := currentUserID(c)
	article, err := h.articleService.Unfavorite(c.Params("slug"), viewerID)
	if err != nil {
		log.Printf("Error unfavoriting article: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}
	if article == nil {
		return messageResponse(c, h.tr, fiber.StatusNotFound, "articles.article_not_found")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"article": NewArticleResponse(article, viewerID),
	})
}

// HandleListTags returns every tag name in use, alphabetically.
func (h *ArticleHandler) HandleListTags(c *fiber.Ctx) error {
	tags, err := h.articleService.Tags()
	if err != nil {
		log.Printf("Error listing tags: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}
	if tags == nil {
		tags = []string{}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"tags": tags,
	})
}

// notFoundOrForbidden disambiguates a failed write: 404 when the slug does
// not exist, 403 when it exists but belongs to someone else.
func (h *ArticleHandler) notFoundOrForbidden(c *fiber.Ctx, slug string) error {
	existing, err := h.articleService.GetBySlug(slug)
	if err != nil {
		log.Printf("Error re-checking article: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}
	if existing == nil {
		return messageResponse(c, h.tr, fiber.StatusNotFound, "articles.article_not_found")
	}
	return messageResponse(c, h.tr, fiber.StatusForbidden, "articles.forbidden")
}

// queryTags collects every non-empty ?tag= value so a single tag and a tag
// set use the same parameter.
func queryTags(c *fiber.Ctx) []string {
	var tags []string
	for _, v := range c.Context().QueryArgs().PeekMulti("tag") {
		if s := string(v); s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}
