package handler

import (
	"context"
	"net/http"
)

type contextKey string

const userIdentifierContextKey = contextKey("userIdentifier")

// contextSetUserIdentifier returns a copy of the request carrying the rater's identifier.
func (h *Handler) contextSetUserIdentifier(r *http.Request, userIdentifier string) *http.Request {
	ctx := context.WithValue(r.Context(), userIdentifierContextKey, userIdentifier)
	return r.WithContext(ctx)
}

// contextGetUserIdentifier is only called behind requireIdentity, so a missing
// value is a programming error.
func (h *Handler) contextGetUserIdentifier(r *http.Request) string {
	userIdentifier, ok := r.Context().Value(userIdentifierContextKey).(string)
	if !ok {
		panic("missing user identifier value in request context")
	}
	return userIdentifier
}
