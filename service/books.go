package service

import (
	"context"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/validator"
	"github.com/jellydator/ttlcache/v3"
)

type books interface {
	ListBooks(ctx context.Context, filter data.BookFilter) ([]*data.Book, data.Metadata, error)
	GetFilterOptions(ctx context.Context) (*data.FilterOptions, error)
	ListBooksByAuthor(ctx context.Context, authorID int64) ([]*data.BookTitle, error)
}

const filterOptionsKey = "filter_options"

// ListBooks service retrieves a page of books. The list can be filtered and sorted.
func (s *service) ListBooks(ctx context.Context, filter data.BookFilter) ([]*data.Book, data.Metadata, error) {
	filter.Filters.PageSize = s.config.Catalog.PageSize
	if filter.CategoryLogic == "" {
		filter.CategoryLogic = data.CategoryLogicOr
	}
	if filter.Filters.Sort == "" {
		filter.Filters.Sort = data.SortRating
	}
	filter.Filters.SortSafeList = data.BookSortSafeList
	v := validator.New()
	if data.ValidateBookFilter(v, filter); !v.Valid() {
		return nil, data.Metadata{}, failedValidation(v.Errors)
	}
	return s.repo.GetAllBooks(ctx, filter, s.now())
}

// GetFilterOptions service retrieves the listing's side data: authors,
// categories, store locations and publication years. The result is cached.
func (s *service) GetFilterOptions(ctx context.Context) (*data.FilterOptions, error) {
	if item := s.cache.Get(filterOptionsKey); item != nil {
		return item.Value(), nil
	}
	authors, err := s.repo.GetAllAuthors(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := s.repo.GetAllCategories(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := s.repo.GetStoreLocations(ctx)
	if err != nil {
		return nil, err
	}
	options := &data.FilterOptions{
		Authors:    authors,
		Categories: categories,
		Locations:  locations,
		Years:      data.YearRange(s.now().Year(), s.config.Catalog.YearSpan),
	}
	s.cache.Set(filterOptionsKey, options, ttlcache.DefaultTTL)
	return options, nil
}

// ListBooksByAuthor service retrieves the titles of an author's books. A missing
// or unknown author yields an empty list rather than an error.
func (s *service) ListBooksByAuthor(ctx context.Context, authorID int64) ([]*data.BookTitle, error) {
	if authorID < 1 {
		return []*data.BookTitle{}, nil
	}
	return s.repo.GetBooksByAuthor(ctx, authorID)
}
