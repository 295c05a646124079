package dto

// CreateRatingRequestBody defines the request body for SubmitRating. The fields are
// pointers so that a missing value can be told apart from a zero value, and
// rating is a float so that a fractional value is reported as a validation error.
type CreateRatingRequestBody struct {
	AuthorID *int64   `json:"author_id"`
	BookID   *int64   `json:"book_id"`
	Rating   *float64 `json:"rating"`
	Review   *string  `json:"review"`
}
