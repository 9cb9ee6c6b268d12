package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied is returned when a caller attempts to mutate a
	// recipe they do not own
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUsernameTaken is returned on signup with an existing username
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned on login with an unknown username or
	// wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token is malformed, tampered with,
	// or expired
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports a missing or empty required field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
