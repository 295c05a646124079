package dto

import "github.com/emzola/librarium/data"

// QsListBooks defines the query strings used for listing books.
type QsListBooks struct {
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
	Filters       data.Filters
}

// BookFilter converts the query strings into the listing filter.
func (qs QsListBooks) BookFilter() data.BookFilter {
	return data.BookFilter{
		Search:        qs.Search,
		Categories:    qs.Categories,
		CategoryLogic: qs.CategoryLogic,
		AuthorID:      qs.AuthorID,
		YearFrom:      qs.YearFrom,
		YearTo:        qs.YearTo,
		Availability:  qs.Availability,
		Location:      qs.Location,
		RatingFrom:    qs.RatingFrom,
		RatingTo:      qs.RatingTo,
		Filters:       qs.Filters,
	}
}
