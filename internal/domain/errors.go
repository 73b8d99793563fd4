package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// ValidationError rejects a mutation before any write happens.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Errors: msgs}
}

// IntegrityError blocks a delete while dependent entities still exist.
type IntegrityError struct {
	Reason string
}

func (e *IntegrityError) Error() string {
	return e.Reason
}

func NewIntegrityError(format string, args ...any) *IntegrityError {
	return &IntegrityError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsIntegrity(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}
