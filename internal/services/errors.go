package services

import "errors"

// Sentinel domain errors. Handlers map these onto HTTP statuses and
// localized message keys; raw storage errors never reach a client.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrArticleNotFound    = errors.New("article not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrSlugConflict       = errors.New("slug conflict")
)
