package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/service"
)

// createRatingHandler godoc
// @Summary Submit a rating
// @Tags ratings
// @Accept json
// @Produce json
// @Param rating body dto.CreateRatingRequestBody true "Rating"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 429 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /v1/ratings [post]
func (h *Handler) createRatingHandler(w http.ResponseWriter, r *http.Request) {
	var input dto.CreateRatingRequestBody
	err := h.decodeJSON(w, r, &input)
	if err != nil {
		var typeErr *fieldTypeError
		switch {
		case errors.As(err, &typeErr):
			h.failedValidationResponse(w, r, map[string]string{typeErr.field: typeErr.message}, input)
		default:
			h.badRequestResponse(w, r, err)
		}
		return
	}
	userIdentifier := h.contextGetUserIdentifier(r)
	rating, err := h.service.SubmitRating(r.Context(), input, userIdentifier)
	if err != nil {
		var (
			validationErr *service.ValidationError
			ratingErr     *service.RatingError
		)
		switch {
		case errors.As(err, &validationErr):
			h.failedValidationResponse(w, r, validationErr.Errors, input)
		case errors.As(err, &ratingErr):
			h.ratingErrorResponse(w, r, ratingErr, input)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusCreated, envelope{
		"message": "thank you, your rating has been recorded",
		"rating":  rating,
	}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
