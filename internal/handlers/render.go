package handlers

import (
	"time"

	"conduit/internal/models"
)

// AuthorResponse is the public author sub-object. It never carries the
// email address or password hash.
type AuthorResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
}

// UserResponse is the account owner's own view, returned from registration,
// login and the current-user endpoint.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Token    string `json:"token,omitempty"`
}

// ProfileResponse is another user's public profile, relative to the viewer.
type ProfileResponse struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

// ArticleResponse is the viewer-relative article view.
type ArticleResponse struct {
	ID             string         `json:"id"`
	Slug           string         `json:"slug"`
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Body           string         `json:"body"`
	TagList        []string       `json:"tagList"`
	Author         AuthorResponse `json:"author"`
	FavoritesCount int            `json:"favoritesCount"`
	Favorited      bool           `json:"favorited"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// CommentResponse is a single comment with its author sub-object.
type CommentResponse struct {
	ID        string         `json:"id"`
	Body      string         `json:"body"`
	Author    AuthorResponse `json:"author"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func newAuthorResponse(u *models.User) AuthorResponse {
	return AuthorResponse{
		ID:       u.ID,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
	}
}

// NewUserResponse renders a user's own account. Pass an empty token to omit
// the token field.
func NewUserResponse(u *models.User, token string) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
		Bio:      u.Bio,
		Image:    u.Image,
		Token:    token,
	}
}

// NewProfileResponse renders a public profile relative to the viewer.
func NewProfileResponse(u *models.User, following bool) ProfileResponse {
	return ProfileResponse{
		Username:  u.Username,
		Bio:       u.Bio,
		Image:     u.Image,
		Following: following,
	}
}

// NewArticleResponse renders an article for the given viewer: favorited is
// true only when the viewer appears in the loaded favoriter set, so
// anonymous requests always see false.
func NewArticleResponse(a *models.Article, viewerID string) ArticleResponse {
	return ArticleResponse{
		ID:             a.ID,
		Slug:           a.Slug,
		Title:          a.Title,
		Description:    a.Description,
		Body:           a.Body,
		TagList:        a.TagNames(),
		Author:         newAuthorResponse(&a.Author),
		FavoritesCount: a.FavoritesCount,
		Favorited:      a.IsFavoritedBy(viewerID),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// NewArticleListResponse renders a page of articles for the given viewer.
func NewArticleListResponse(articles []models.Article, viewerID string) []ArticleResponse {
	out := make([]ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, NewArticleResponse(&articles[i], viewerID))
	}
	return out
}

// NewCommentResponse renders a single comment.
func NewCommentResponse(comment *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Body:      comment.Body,
		Author:    newAuthorResponse(&comment.Author),
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// NewCommentListResponse renders a page of comments.
func NewCommentListResponse(comments []models.Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}
