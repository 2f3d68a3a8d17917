package handlers

import (
	"errors"
	"log"

	"conduit/internal/services"
	"conduit/pkg/translator"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CommentHandler handles comments on articles.
type CommentHandler struct {
	commentService *services.CommentService
	authService    *services.AuthService
	validate       *validator.Validate
	tr             *translator.Translator
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentService *services.CommentService, authService *services.AuthService, tr *translator.Translator) *CommentHandler {
	validate := validator.New()
	if err := tr.RegisterValidationMessages(validate); err != nil {
		log.Printf("Warning: could not register validation messages: %v", err)
	}
	return &CommentHandler{
		commentService: commentService,
		authService:    authService,
		validate:       validate,
		tr:             tr,
	}
}

// RegisterRoutes registers the comment endpoints on the router.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, auth, optionalAuth fiber.Handler) {
	comments := router.Group("/articles/:slug/comments")
	comments.Post("/", auth, h.HandleCreate)
	comments.Get("/", optionalAuth, h.HandleList)
	comments.Delete("/:id", auth, h.HandleDelete)
}

// CreateCommentRequest is the payload for posting a comment.
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

// HandleCreate posts a comment on the article behind the slug.
func (h *CommentHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateCommentRequest
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

	comment, err := h.commentService.Create(c.Params("slug"), req.Body, author)
	if err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			return messageResponse(c, h.tr, fiber.StatusNotFound, "articles.article_not_found")
		}
		log.Printf("Error creating comment: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"comment": NewCommentResponse(comment),
	})
}

// HandleList returns a page of the article's comments, newest first.
func (h *CommentHandler) HandleList(c *fiber.Ctx) error {
	comments, total, err := h.commentService.ListForArticle(c.Params("slug"), c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			return messageResponse(c, h.tr, fiber.StatusNotFound, "articles.article_not_found")
		}
		log.Printf("Error listing comments: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"comments":      NewCommentListResponse(comments),
		"commentsCount": total,
	})
}

// HandleDelete removes a comment. Only the comment's author may delete it.
func (h *CommentHandler) HandleDelete(c *fiber.Ctx) error {
	err := h.commentService.Delete(c.Params("slug"), c.Params("id"), currentUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrArticleNotFound):
			return messageResponse(c, h.tr, fiber.StatusNotFound, "articles.article_not_found")
		case errors.Is(err, services.ErrCommentNotFound):
			return messageResponse(c, h.tr, fiber.StatusNotFound, "comments.comment_not_found")
		case errors.Is(err, services.ErrForbidden):
			return messageResponse(c, h.tr, fiber.StatusForbidden, "comments.unauthorized_delete")
		}
		log.Printf("Error deleting comment: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.SendStatus(fiber.StatusNoContent)
}
