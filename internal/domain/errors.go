package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProfile is returned when a share has no explicit profile and no default exists
	ErrNoProfile = errors.New("no profile selected")

	// ErrProfileNotFound is returned when a profile id does not match any stored profile
	ErrProfileNotFound = errors.New("profile not found")

	// ErrEmptyURL is returned when a share request carries no URL
	ErrEmptyURL = &ValidationError{Field: "url", Message: "url is required"}
)

// ValidationError reports invalid user input rejected before any store
// mutation or network call
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError checks if err wraps a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
