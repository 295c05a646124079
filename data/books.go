package data

import (
	"time"

	"github.com/emzola/librarium/internal/validator"
)

// Availability statuses of a book copy.
const (
	AvailabilityAvailable = "available"
	AvailabilityRented    = "rented"
	AvailabilityReserved  = "reserved"
)

var AvailabilityStatuses = []string{AvailabilityAvailable, AvailabilityRented, AvailabilityReserved}

// Listing sort modes.
const (
	SortRating       = "rating"
	SortVotes        = "votes"
	SortRecent       = "recent"
	SortAlphabetical = "alphabetical"
)

var BookSortSafeList = []string{SortRating, SortVotes, SortRecent, SortAlphabetical}

// Category combination modes.
const (
	CategoryLogicOr  = "OR"
	CategoryLogicAnd = "AND"
)

// Rating bounds accepted by the listing filter.
const (
	MinRatingBound = 0
	MaxRatingBound = 10
)

// Book defines a catalog book together with its rating statistics.
type Book struct {
	ID                 int64       `json:"id"`
	Title              string      `json:"title"`
	ISBN               string      `json:"isbn"`
	Publisher          string      `json:"publisher"`
	PublicationYear    int         `json:"publication_year"`
	AvailabilityStatus string      `json:"availability_status"`
	StoreLocation      string      `json:"store_location"`
	Description        string      `json:"description,omitempty"`
	Price              int64       `json:"price"`
	CreatedAt          time.Time   `json:"created_at"`
	Author             Author      `json:"author"`
	Categories         []*Category `json:"categories"`
	AvgRating          *float64    `json:"avg_rating"`
	TotalVotes         int64       `json:"total_votes"`
	RecentRating       *float64    `json:"recent_rating"`
	PreviousRating     *float64    `json:"previous_rating"`
}

// BookTitle is the short form of a book used by the rating form.
type BookTitle struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// BookRef identifies a book and its owning author.
type BookRef struct {
	ID       int64
	AuthorID int64
}

// BookFilter holds the listing parameters. Zero values mean "not filtered".
type BookFilter struct {
	Search        string
	Categories    []int64
	CategoryLogic string
	AuthorID      int64
	YearFrom      int
	YearTo        int
	Availability  string
	Location      string
	RatingFrom    *float64
	RatingTo      *float64
	Filters       Filters
}

// RatingBounded reports whether the caller asked for a rating range.
func (f BookFilter) RatingBounded() bool {
	return f.RatingFrom != nil || f.RatingTo != nil
}

// RatingRange returns the inclusive rating bounds with defaults applied.
func (f BookFilter) RatingRange() (float64, float64) {
	from, to := float64(MinRatingBound), float64(MaxRatingBound)
	if f.RatingFrom != nil {
		from = *f.RatingFrom
	}
	if f.RatingTo != nil {
		to = *f.RatingTo
	}
	return from, to
}

func ValidateBookFilter(v *validator.Validator, f BookFilter) {
	ValidateFilters(v, f.Filters)
	v.Check(validator.PermittedValue(f.CategoryLogic, CategoryLogicOr, CategoryLogicAnd), "category_logic", "must be OR or AND")
	for _, id := range f.Categories {
		if id < 1 {
			v.AddError("categories", "must contain positive ids")
			break
		}
	}
	v.Check(f.AuthorID >= 0, "author_id", "must be a positive integer")
	v.Check(f.YearFrom >= 0, "year_from", "must be a positive integer")
	v.Check(f.YearTo >= 0, "year_to", "must be a positive integer")
	if f.YearFrom > 0 && f.YearTo > 0 {
		v.Check(f.YearFrom <= f.YearTo, "year_from", "must not be greater than year_to")
	}
	if f.Availability != "" {
		v.Check(validator.PermittedValue(f.Availability, AvailabilityStatuses...), "availability", "must be one of available, rented, reserved")
	}
	from, to := f.RatingRange()
	v.Check(from >= MinRatingBound && from <= MaxRatingBound, "rating_from", "must be between 0 and 10")
	v.Check(to >= MinRatingBound && to <= MaxRatingBound, "rating_to", "must be between 0 and 10")
	v.Check(from <= to, "rating_from", "must not be greater than rating_to")
}

// FilterOptions is the unfiltered side data the listing page offers as choices.
type FilterOptions struct {
	Authors    []*Author   `json:"authors"`
	Categories []*Category `json:"categories"`
	Locations  []string    `json:"locations"`
	Years      []int       `json:"years"`
}

// YearRange returns the years from current down to current-span inclusive.
func YearRange(current, span int) []int {
	years := make([]int, 0, span+1)
	for y := current; y >= current-span; y-- {
		years = append(years, y)
	}
	return years
}
