package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrFailedValidation     = errors.New("failed validation")
	ErrRecordNotFound       = errors.New("record not found")
	ErrRelationshipMismatch = errors.New("book does not belong to author")
	ErrCooldownActive       = errors.New("cooldown active")
	ErrDuplicateRecord      = errors.New("duplicate record")
	ErrStorage              = errors.New("storage failure")
)

// ValidationError carries the field-scoped messages of a failed validation.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q %s", k, e.Errors[k]))
	}
	return ErrFailedValidation.Error() + ": " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrFailedValidation }

func failedValidation(errs map[string]string) error {
	return &ValidationError{Errors: errs}
}

// RatingError reports why a well-formed rating was refused. Err is one of
// ErrRelationshipMismatch, ErrCooldownActive, ErrDuplicateRecord or ErrStorage.
type RatingError struct {
	Err     error
	Field   string
	Message string
	// Remaining is set for ErrCooldownActive.
	Remaining time.Duration
}

func (e *RatingError) Error() string { return e.Message }

func (e *RatingError) Unwrap() error { return e.Err }
