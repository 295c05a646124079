package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const ratingBody = `{"author_id": 1, "book_id": 10, "rating": 8, "review": "A quiet masterpiece"}`

func TestCreateRatingHandler(t *testing.T) {
	routes, svc := newTestHandler(t, testConfig())
	svc.On("SubmitRating", mock.Anything, mock.MatchedBy(func(input dto.CreateRatingRequestBody) bool {
		return *input.AuthorID == 1 && *input.BookID == 10 && *input.Rating == 8 && *input.Review == "A quiet masterpiece"
	}), "rater-1").Return(&data.Rating{ID: 99, BookID: 10, Rating: 8, Review: "A quiet masterpiece"}, nil).Once()

	rr, body := do(t, routes, http.MethodPost, "/v1/ratings", ratingBody)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotEmpty(t, body["message"])
	rating := body["rating"].(map[string]interface{})
	assert.Equal(t, float64(99), rating["id"])
	assert.NotContains(t, rating, "user_identifier")
}

func TestCreateRatingHandlerBadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", "body must not be empty"},
		{"malformed", `{"rating": 8`, "body contains badly-formed JSON"},
		{"unknown key", `{"stars": 8}`, `body contains unknown key "stars"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes, _ := newTestHandler(t, testConfig())
			rr, body := do(t, routes, http.MethodPost, "/v1/ratings", tt.body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.want, body["error"])
		})
	}
}

func TestCreateRatingHandlerWrongFieldType(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
		want  string
	}{
		{"string rating", `{"author_id": 1, "book_id": 10, "rating": "7"}`, "rating", "must be a number"},
		{"fractional book id", `{"author_id": 1, "book_id": 10.5, "rating": 7}`, "book_id", "must be an integer"},
		{"numeric review", `{"author_id": 1, "book_id": 10, "rating": 7, "review": 5}`, "review", "must be a string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes, svc := newTestHandler(t, testConfig())
			rr, body := do(t, routes, http.MethodPost, "/v1/ratings", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Equal(t, map[string]interface{}{tt.field: tt.want}, body["error"])
			input := body["input"].(map[string]interface{})
			assert.Equal(t, float64(1), input["author_id"])
			svc.AssertNotCalled(t, "SubmitRating", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCreateRatingHandlerRefusals(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		field  string
		header string
	}{
		{
			name:   "validation",
			err:    &service.ValidationError{Errors: map[string]string{"rating": "must be between 1 and 10"}},
			status: http.StatusUnprocessableEntity,
			field:  "rating",
		},
		{
			name:   "relationship",
			err:    &service.RatingError{Err: service.ErrRelationshipMismatch, Field: "book_id", Message: "the selected book does not belong to the selected author"},
			status: http.StatusUnprocessableEntity,
			field:  "book_id",
		},
		{
			name:   "cooldown",
			err:    &service.RatingError{Err: service.ErrCooldownActive, Field: "rating", Message: "you can submit another rating in 21h 59m 59s", Remaining: 22*time.Hour - 500*time.Millisecond},
			status: http.StatusTooManyRequests,
			field:  "rating",
			header: "79200",
		},
		{
			name:   "duplicate",
			err:    &service.RatingError{Err: service.ErrDuplicateRecord, Field: "book_id", Message: "you have already rated this book"},
			status: http.StatusConflict,
			field:  "book_id",
		},
		{
			name:   "storage",
			err:    &service.RatingError{Err: service.ErrStorage, Field: "rating", Message: "failed to save rating, please try again"},
			status: http.StatusInternalServerError,
			field:  "rating",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routes, svc := newTestHandler(t, testConfig())
			svc.On("SubmitRating", mock.Anything, mock.Anything, "rater-1").Return(nil, tt.err).Once()

			rr, body := do(t, routes, http.MethodPost, "/v1/ratings", ratingBody)
			require.Equal(t, tt.status, rr.Code)
			assert.Contains(t, body["error"], tt.field)
			assert.Equal(t, tt.header, rr.Header().Get("Retry-After"))

			input := body["input"].(map[string]interface{})
			assert.Equal(t, float64(10), input["book_id"])
			assert.Equal(t, "A quiet masterpiece", input["review"])
		})
	}
}

func TestCreateRatingHandlerUnexpectedError(t *testing.T) {
	routes, svc := newTestHandler(t, testConfig())
	svc.On("SubmitRating", mock.Anything, mock.Anything, "rater-1").Return(nil, errors.New("context canceled")).Once()

	rr, body := do(t, routes, http.MethodPost, "/v1/ratings", ratingBody)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "the server encountered a problem and could not process your request", body["error"])
}
