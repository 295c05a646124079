package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/emzola/librarium/service"
)

func (h *Handler) logError(r *http.Request, err error) {
	h.logger.PrintError(err, map[string]string{
		"request_method": r.Method,
		"request_url":    r.URL.String(),
	})
}

func (h *Handler) errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	h.writeError(w, r, status, envelope{"error": message}, nil)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, env envelope, headers http.Header) {
	err := h.encodeJSON(w, status, env, headers)
	if err != nil {
		h.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (h *Handler) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	h.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (h *Handler) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "the requested resource could not be found"
	h.errorResponse(w, r, http.StatusNotFound, message)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("the %s method is not supported for this resource", r.Method)
	h.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (h *Handler) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	h.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse reports field errors. A non-nil input is echoed
// back so a form can be redisplayed with what the user typed.
func (h *Handler) failedValidationResponse(w http.ResponseWriter, r *http.Request, errors map[string]string, input interface{}) {
	env := envelope{"error": errors}
	if input != nil {
		env["input"] = input
	}
	h.writeError(w, r, http.StatusUnprocessableEntity, env, nil)
}

// ratingErrorResponse maps a refused rating to its status code. Cooldowns
// carry a Retry-After header in whole seconds.
func (h *Handler) ratingErrorResponse(w http.ResponseWriter, r *http.Request, err *service.RatingError, input interface{}) {
	var (
		status  int
		headers http.Header
	)
	switch {
	case errors.Is(err, service.ErrRelationshipMismatch):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrCooldownActive):
		status = http.StatusTooManyRequests
		headers = make(http.Header)
		headers.Set("Retry-After", strconv.Itoa(int(math.Ceil(err.Remaining.Seconds()))))
	case errors.Is(err, service.ErrDuplicateRecord):
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}
	env := envelope{"error": map[string]string{err.Field: err.Message}}
	if input != nil {
		env["input"] = input
	}
	h.writeError(w, r, status, env, headers)
}

func (h *Handler) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "rate limit exceeded"
	h.errorResponse(w, r, http.StatusTooManyRequests, message)
}

func (h *Handler) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	message := "invalid authentication credentials"
	h.errorResponse(w, r, http.StatusUnauthorized, message)
}
