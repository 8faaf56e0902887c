package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the service layer. Handlers never inspect these
// directly; the central error handler maps them to HTTP statuses.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func NotFoundError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func ForbiddenError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}
