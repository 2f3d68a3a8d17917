package services_test

import (
	"testing"

	"conduit/internal/models"
	"conduit/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentRepository is a mock implementation of repositories.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id, articleID string) (*models.Comment, error) {
	args := m.Called(id, articleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByArticle(articleID string, limit, offset int) ([]models.Comment, int64, error) {
	args := m.Called(articleID, limit, offset)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) Delete(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func TestCommentService_Create(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockArticles := new(MockArticleRepository)
	commentService := services.NewCommentService(mockComments, mockArticles)

	article := &models.Article{ID: "art-1", Slug: "hello-world"}
	mockArticles.On("GetBySlug", "hello-world").Return(article, nil).Once()
	mockComments.On("Create", mock.AnythingOfType("*models.Comment")).Return(nil).Once()

	author := &models.User{ID: "user-2", Username: "bob"}
	comment, err := commentService.Create("hello-world", "nice post", author)

	assert.NoError(t, err)
	assert.Equal(t, "art-1", comment.ArticleID)
	assert.Equal(t, "user-2", comment.AuthorID)
	assert.Equal(t, "bob", comment.Author.Username)
	mockComments.AssertExpectations(t)
}

func TestCommentService_Create_MissingArticle(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockArticles := new(MockArticleRepository)
	commentService := services.NewCommentService(mockComments, mockArticles)

	mockArticles.On("GetBySlug", "missing").Return(nil, nil).Once()

	_, err := commentService.Create("missing", "nice post", &models.User{ID: "user-2"})

	assert.ErrorIs(t, err, services.ErrArticleNotFound)
	mockComments.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCommentService_ListForArticle(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockArticles := new(MockArticleRepository)
	commentService := services.NewCommentService(mockComments, mockArticles)

	article := &models.Article{ID: "art-1", Slug: "hello-world"}
	mockArticles.On("GetBySlug", "hello-world").Return(article, nil).Once()
	mockComments.On("ListByArticle", "art-1", 20, 0).
		Return([]models.Comment{{ID: "c-1", Body: "first"}}, int64(1), nil).Once()

	comments, total, err := commentService.ListForArticle("hello-world", 0, 0)

	assert.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, int64(1), total)
	mockComments.AssertExpectations(t)
}

func TestCommentService_Delete(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockArticles := new(MockArticleRepository)
	commentService := services.NewCommentService(mockComments, mockArticles)

	article := &models.Article{ID: "art-1", Slug: "hello-world"}
	comment := &models.Comment{ID: "c-1", ArticleID: "art-1", AuthorID: "user-2"}
	mockArticles.On("GetBySlug", "hello-world").Return(article, nil).Once()
	mockComments.On("GetByID", "c-1", "art-1").Return(comment, nil).Once()
	mockComments.On("Delete", comment).Return(nil).Once()

	err := commentService.Delete("hello-world", "c-1", "user-2")

	assert.NoError(t, err)
	mockComments.AssertExpectations(t)
}

func TestCommentService_Delete_NotCommentAuthor(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockArticles := new(MockArticleRepository)
	commentService := services.NewCommentService(mockComments, mockArticles)

	article := &models.Article{ID: "art-1", Slug: "hello-world"}
	comment := &models.Comment{ID: "c-1", ArticleID: "art-1", AuthorID: "user-2"}
	mockArticles.On("GetBySlug", "hello-world").Return(article, nil).Once()
	mockComments.On("GetByID", "c-1", "art-1").Return(comment, nil).Once()

	err := commentService.Delete("hello-world", "c-1", "user-3")

	assert.ErrorIs(t, err, services.ErrForbidden)
	mockComments.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestCommentService_Delete_MissingComment(t *testing.T) {
	mockComments := new(MockCommentRepository)
	mockArticles := new(MockArticleRepository)
	commentService := services.NewCommentService(mockComments, mockArticles)

	article := &models.Article{ID: "art-1", Slug: "hello-world"}
	mockArticles.On("GetBySlug", "hello-world").Return(article, nil).Once()
	mockComments.On("GetByID", "ghost", "art-1").Return(nil, nil).Once()

	err := commentService.Delete("hello-world", "ghost", "user-2")

	assert.ErrorIs(t, err, services.ErrCommentNotFound)
	mockComments.AssertExpectations(t)
}
