package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/v1/books", h.listBooksHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/by-author", h.listBooksByAuthorHandler)

	router.HandlerFunc(http.MethodGet, "/v1/authors", h.listAuthorsHandler)
	router.HandlerFunc(http.MethodGet, "/v1/authors/top", h.topAuthorsHandler)

	router.HandlerFunc(http.MethodPost, "/v1/ratings", h.requireIdentity(h.createRatingHandler))

	router.Handler(http.MethodGet, "/debug/vars", h.basicAuth(expvar.Handler()))
	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	return h.metrics(h.recoverPanic(h.enableCORS(h.rateLimit(router))))
}
