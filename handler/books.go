package handler

import (
	"errors"
	"net/http"

	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/internal/validator"
	"github.com/emzola/librarium/service"
)

// listBooksHandler godoc
// @Summary List books with rating statistics
// @Tags books
// @Produce json
// @Param search query string false "Search title, isbn, publisher or author"
// @Param categories query []int false "Category ids" collectionFormat(multi)
// @Param category_logic query string false "How categories combine" Enums(OR, AND)
// @Param sort query string false "Sort order" Enums(rating, votes, recent, alphabetical)
// @Param page query int false "Page number"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /v1/books [get]
func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	var qsInput dto.QsListBooks
	v := validator.New()
	qs := r.URL.Query()
	qsInput.Search = h.readString(qs, "search", "")
	qsInput.Categories = h.readIDList(qs, "categories", v)
	qsInput.CategoryLogic = h.readString(qs, "category_logic", "")
	qsInput.AuthorID = h.readInt64(qs, "author_id", 0, v)
	qsInput.YearFrom = h.readInt(qs, "year_from", 0, v)
	qsInput.YearTo = h.readInt(qs, "year_to", 0, v)
	qsInput.Availability = h.readString(qs, "availability", "")
	qsInput.Location = h.readString(qs, "location", "")
	qsInput.RatingFrom = h.readFloat(qs, "rating_from", v)
	qsInput.RatingTo = h.readFloat(qs, "rating_to", v)
	qsInput.Filters.Page = h.readInt(qs, "page", 1, v)
	qsInput.Filters.Sort = h.readString(qs, "sort", "")
	if !v.Valid() {
		h.failedValidationResponse(w, r, v.Errors, nil)
		return
	}
	books, metadata, err := h.service.ListBooks(r.Context(), qsInput.BookFilter())
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
	filters, err := h.service.GetFilterOptions(r.Context())
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{
		"books":    books,
		"metadata": metadata,
		"links":    pageLinks(r.URL, metadata),
		"filters":  filters,
	}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

// listBooksByAuthorHandler godoc
// @Summary List an author's book titles
// @Tags books
// @Produce json
// @Param author_id query int false "Author id"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /v1/books/by-author [get]
func (h *Handler) listBooksByAuthorHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	authorID := h.readInt64(r.URL.Query(), "author_id", 0, v)
	if !v.Valid() {
		h.failedValidationResponse(w, r, v.Errors, nil)
		return
	}
	books, err := h.service.ListBooksByAuthor(r.Context(), authorID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
