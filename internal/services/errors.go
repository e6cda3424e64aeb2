package services

import (
	"errors"

	"github.com/baharkarakas/moviefav-backend/internal/validate"
)

// ValidationError lists every field that failed its schema.
type ValidationError struct {
	Fields validate.Errs
}

func (e *ValidationError) Error() string { return "validation failed: " + e.Fields.Error() }

// ConflictError reports a uniqueness violation on Field.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string { return e.Message }

var (
	// same error for unknown user and wrong password
	ErrInvalidCredentials = &AuthenticationError{Message: "invalid username or password"}
	ErrInvalidToken       = &AuthenticationError{Message: "invalid or expired token"}
	ErrAuthRequired       = &AuthenticationError{Message: "authentication required"}
)

// asValidation turns validate.Errs into a *ValidationError and passes any
// other error through.
func asValidation(err error) error {
	if err == nil {
		return nil
	}
	var fields validate.Errs
	if errors.As(err, &fields) {
		return &ValidationError{Fields: fields}
	}
	return err
}
