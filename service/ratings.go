package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/internal/validator"
	"github.com/emzola/librarium/repository"
)

type ratings interface {
	SubmitRating(ctx context.Context, input dto.CreateRatingRequestBody, userIdentifier string) (*data.Rating, error)
}

func (s *service) ratingRules() data.RatingRules {
	return data.RatingRules{
		Min:             s.config.Ratings.Min,
		Max:             s.config.Ratings.Max,
		ReviewMaxLength: s.config.Ratings.ReviewMaxLength,
	}
}

// SubmitRating service records a user's rating of a book. The input is
// validated first, then the book must belong to the given author, the user
// must be outside the cooldown window and must not have rated the book yet.
func (s *service) SubmitRating(ctx context.Context, input dto.CreateRatingRequestBody, userIdentifier string) (*data.Rating, error) {
	now := s.now()
	rules := s.ratingRules()
	rating := &data.Rating{
		UserIdentifier: userIdentifier,
		CreatedAt:      now,
	}
	if input.Review != nil {
		rating.Review = *input.Review
	}

	v := validator.New()
	v.Check(input.AuthorID != nil, "author_id", "must be provided")
	v.Check(input.BookID != nil, "book_id", "must be provided")
	v.Check(input.Rating != nil, "rating", "must be provided")
	if input.Rating != nil {
		value := *input.Rating
		v.Check(value == math.Trunc(value), "rating", "must be an integer")
		// Clamp to one step outside the bounds so the conversion cannot overflow.
		value = math.Max(math.Min(value, float64(rules.Max+1)), float64(rules.Min-1))
		rating.Rating = int(value)
	}
	data.ValidateRating(v, rating, rules)

	var book *data.BookRef
	if input.AuthorID != nil {
		_, err := s.repo.GetAuthor(ctx, *input.AuthorID)
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("author_id", "must reference an existing author")
		case err != nil:
			return nil, s.storageError(err, userIdentifier)
		}
	}
	if input.BookID != nil {
		var err error
		book, err = s.repo.GetBookRef(ctx, *input.BookID)
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			v.AddError("book_id", "must reference an existing book")
		case err != nil:
			return nil, s.storageError(err, userIdentifier)
		}
	}
	if !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	rating.BookID = book.ID

	if book.AuthorID != *input.AuthorID {
		return nil, &RatingError{
			Err:     ErrRelationshipMismatch,
			Field:   "book_id",
			Message: "the selected book does not belong to the selected author",
		}
	}

	last, err := s.repo.GetLatestRatingForUser(ctx, userIdentifier)
	switch {
	case err == nil:
		if remaining := s.cooldownRemaining(last.CreatedAt, now); remaining > 0 {
			return nil, cooldownError(remaining)
		}
	case !errors.Is(err, repository.ErrRecordNotFound):
		return nil, s.storageError(err, userIdentifier)
	}

	exists, err := s.repo.RatingExistsForUser(ctx, rating.BookID, userIdentifier)
	if err != nil {
		return nil, s.storageError(err, userIdentifier)
	}
	if exists {
		return nil, duplicateError()
	}

	err = s.repo.CreateRating(ctx, rating)
	if err != nil {
		var cooldown *repository.CooldownError
		switch {
		case errors.As(err, &cooldown):
			return nil, cooldownError(s.cooldownRemaining(cooldown.LastRatedAt, now))
		case errors.Is(err, repository.ErrDuplicateRecord):
			return nil, duplicateError()
		default:
			return nil, s.storageError(err, userIdentifier)
		}
	}
	return rating, nil
}

// cooldownRemaining returns how long until a user who last rated at last may rate again.
func (s *service) cooldownRemaining(last, now time.Time) time.Duration {
	remaining := s.config.Ratings.Cooldown - now.Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func cooldownError(remaining time.Duration) error {
	return &RatingError{
		Err:       ErrCooldownActive,
		Field:     "rating",
		Message:   fmt.Sprintf("you can submit another rating in %s", data.FormatRemaining(remaining)),
		Remaining: remaining,
	}
}

func duplicateError() error {
	return &RatingError{
		Err:     ErrDuplicateRecord,
		Field:   "book_id",
		Message: "you have already rated this book",
	}
}

// storageError logs the underlying failure and hides it behind a generic message.
func (s *service) storageError(err error, userIdentifier string) error {
	s.logger.PrintError(err, map[string]string{
		"operation":       "submit_rating",
		"user_identifier": userIdentifier,
	})
	return &RatingError{
		Err:     ErrStorage,
		Field:   "rating",
		Message: "failed to save rating, please try again",
	}
}
