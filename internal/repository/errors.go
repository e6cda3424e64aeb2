package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	ErrUsernameTaken    = fmt.Errorf("username taken: %w", ErrConflict)
	ErrEmailTaken       = fmt.Errorf("email taken: %w", ErrConflict)
	ErrAlreadyFavorited = fmt.Errorf("movie already favorited: %w", ErrConflict)
)
