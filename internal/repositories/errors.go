package repositories

import "errors"

// ErrDuplicateKey is returned when a write violates a unique constraint
// (username, email, article slug, tag name, follow edge).
var ErrDuplicateKey = errors.New("duplicate key")
