package services

import (
	"conduit/internal/models"
	"conduit/internal/repositories"
)

// CommentService handles business logic for comments on articles.
type CommentService struct {
	commentRepo repositories.CommentRepository
	articleRepo repositories.ArticleRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(commentRepo repositories.CommentRepository, articleRepo repositories.ArticleRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
	}
}

// Create adds a comment by author to the article behind articleSlug.
// ErrArticleNotFound is returned when the article does not exist.
func (s *CommentService) Create(articleSlug, body string, author *models.User) (*models.Comment, error) {
	article, err := s.articleRepo.GetBySlug(articleSlug)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	comment := &models.Comment{
		Body:      body,
		ArticleID: article.ID,
		AuthorID:  author.ID,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	comment.Author = *author
	return comment, nil
}

// ListForArticle returns a page of an article's comments, newest first, and
// the article's total comment count.
func (s *CommentService) ListForArticle(articleSlug string, limit, offset int) ([]models.Comment, int64, error) {
	article, err := s.articleRepo.GetBySlug(articleSlug)
	if err != nil {
		return nil, 0, err
	}
	if article == nil {
		return nil, 0, ErrArticleNotFound
	}

	limit, offset = clampPage(limit, offset)
	return s.commentRepo.ListByArticle(article.ID, limit, offset)
}

// Delete removes a comment. Only the comment's own author may delete it;
// any other requester gets ErrForbidden.
func (s *CommentService) Delete(articleSlug, commentID, requesterID string) error {
	article, err := s.articleRepo.GetBySlug(articleSlug)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrArticleNotFound
	}

	comment, err := s.commentRepo.GetByID(commentID, article.ID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.AuthorID != requesterID {
		return ErrForbidden
	}

	return s.commentRepo.Delete(comment)
}
