package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/service"
)

// listAuthorsHandler godoc
// @Summary List all authors by name
// @Tags authors
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /v1/authors [get]
func (h *Handler) listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.ListAuthors(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"authors": authors}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// topAuthorsHandler godoc
// @Summary Rank authors
// @Tags authors
// @Produce json
// @Param tab query string false "Ranking tab" Enums(popularity, rating, trending)
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /v1/authors/top [get]
func (h *Handler) topAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	tab := data.RankingTab(h.readString(r.URL.Query(), "tab", string(data.TabPopularity)))
	authors, err := h.service.TopAuthors(r.Context(), tab)
	if err != nil {
		var validationErr *service.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.failedValidationResponse(w, r, validationErr.Errors, nil)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"tab": tab, "authors": authors}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
