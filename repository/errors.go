package repository

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrCooldownActive  = errors.New("cooldown active")
)

// CooldownError reports a rating attempt made while the user's previous
// rating is still inside the cooldown window.
type CooldownError struct {
	LastRatedAt time.Time
}

func (e *CooldownError) Error() string { return ErrCooldownActive.Error() }

func (e *CooldownError) Unwrap() error { return ErrCooldownActive }

const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation on constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && pqErr.Constraint == constraint
}
