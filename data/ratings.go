package data

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/emzola/librarium/internal/validator"
)

// Rating defines a single rating of a book. Ratings are never updated.
type Rating struct {
	ID             int64     `json:"id"`
	BookID         int64     `json:"book_id"`
	UserIdentifier string    `json:"-"`
	Rating         int       `json:"rating"`
	Review         string    `json:"review,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// RatingRules bounds the values a rating may take.
type RatingRules struct {
	Min             int
	Max             int
	ReviewMaxLength int
}

func ValidateRating(v *validator.Validator, rating *Rating, rules RatingRules) {
	v.Check(rating.Rating >= rules.Min && rating.Rating <= rules.Max, "rating", fmt.Sprintf("must be between %d and %d", rules.Min, rules.Max))
	v.Check(utf8.RuneCountInString(rating.Review) <= rules.ReviewMaxLength, "review", fmt.Sprintf("must not be more than %d characters long", rules.ReviewMaxLength))
}

// FormatRemaining renders a cooldown duration as "Xh Ym Zs", truncated to whole seconds.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%dh %dm %ds", total/3600, total%3600/60, total%60)
}
