package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/librarium/data"
)

type ratings interface {
	GetLatestRatingForUser(ctx context.Context, userIdentifier string) (*data.Rating, error)
	RatingExistsForUser(ctx context.Context, bookID int64, userIdentifier string) (bool, error)
	CreateRating(ctx context.Context, rating *data.Rating) error
}

const ratingsUserBookKey = "ratings_book_id_user_identifier_key"

// GetLatestRatingForUser retrieves the most recent rating left by a user.
func (r *repository) GetLatestRatingForUser(ctx context.Context, userIdentifier string) (*data.Rating, error) {
	query := `
		SELECT id, book_id, user_identifier, rating, COALESCE(review, ''), created_at
		FROM ratings
		WHERE user_identifier = $1
		ORDER BY created_at DESC
		LIMIT 1`
	var rating data.Rating
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, userIdentifier).Scan(
		&rating.ID,
		&rating.BookID,
		&rating.UserIdentifier,
		&rating.Rating,
		&rating.Review,
		&rating.CreatedAt,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &rating, nil
}

// RatingExistsForUser checks whether a user has already rated a book.
func (r *repository) RatingExistsForUser(ctx context.Context, bookID int64, userIdentifier string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM ratings
			WHERE book_id = $1 AND user_identifier = $2
		)`
	var exists bool
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID, userIdentifier).Scan(&exists)
	return exists, err
}

// CreateRating inserts a rating. The insert runs in a transaction holding an
// advisory lock on the user identifier, so the cooldown and duplicate checks
// made inside it cannot race with a concurrent submission from the same user.
// It returns a *CooldownError or ErrDuplicateRecord when a check fails.
func (r *repository) CreateRating(ctx context.Context, rating *data.Rating) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, rating.UserIdentifier)
	if err != nil {
		return err
	}

	var lastRatedAt time.Time
	err = tx.QueryRowContext(ctx, `
		SELECT created_at
		FROM ratings
		WHERE user_identifier = $1
		ORDER BY created_at DESC
		LIMIT 1`, rating.UserIdentifier).Scan(&lastRatedAt)
	switch {
	case err == nil:
		if rating.CreatedAt.Sub(lastRatedAt) < r.config.Ratings.Cooldown {
			return &CooldownError{LastRatedAt: lastRatedAt}
		}
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM ratings
			WHERE book_id = $1 AND user_identifier = $2
		)`, rating.BookID, rating.UserIdentifier).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicateRecord
	}

	query := `
		INSERT INTO ratings (book_id, user_identifier, rating, review, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $5)
		RETURNING id`
	args := []interface{}{rating.BookID, rating.UserIdentifier, rating.Rating, rating.Review, rating.CreatedAt}
	err = tx.QueryRowContext(ctx, query, args...).Scan(&rating.ID)
	if err != nil {
		switch {
		case isUniqueViolation(err, ratingsUserBookKey):
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return tx.Commit()
}
