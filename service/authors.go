package service

import (
	"context"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/validator"
)

type authors interface {
	ListAuthors(ctx context.Context) ([]*data.Author, error)
	TopAuthors(ctx context.Context, tab data.RankingTab) ([]*data.RankedAuthor, error)
}

// ListAuthors service retrieves every author ordered by name.
func (s *service) ListAuthors(ctx context.Context) ([]*data.Author, error) {
	return s.repo.GetAllAuthors(ctx)
}

// TopAuthors service ranks authors by the given tab, popularity when empty.
// Popularity and trending rows are enriched with each author's best and worst book.
func (s *service) TopAuthors(ctx context.Context, tab data.RankingTab) ([]*data.RankedAuthor, error) {
	if tab == "" {
		tab = data.TabPopularity
	}
	v := validator.New()
	if data.ValidateRankingTab(v, tab); !v.Valid() {
		return nil, failedValidation(v.Errors)
	}
	var (
		authors []*data.RankedAuthor
		err     error
	)
	switch tab {
	case data.TabRating:
		authors, err = s.repo.GetTopRatedAuthors(ctx)
	case data.TabTrending:
		authors, err = s.repo.GetTrendingAuthors(ctx, s.now())
	default:
		authors, err = s.repo.GetPopularAuthors(ctx)
	}
	if err != nil {
		return nil, err
	}
	if tab != data.TabRating {
		for _, author := range authors {
			if err := s.attachBestAndWorst(ctx, author); err != nil {
				return nil, err
			}
		}
	}
	for _, author := range authors {
		roundRanking(author)
	}
	return authors, nil
}

// attachBestAndWorst sets the first and last of the author's books ordered by
// mean rating. Authors without rated books are left unchanged.
func (s *service) attachBestAndWorst(ctx context.Context, author *data.RankedAuthor) error {
	books, err := s.repo.GetAuthorBookRatings(ctx, author.ID)
	if err != nil {
		return err
	}
	if len(books) == 0 {
		return nil
	}
	author.BestBook = books[0]
	author.WorstBook = books[len(books)-1]
	return nil
}

func roundRanking(author *data.RankedAuthor) {
	for _, f := range []*float64{author.AvgRating, author.RecentAvg, author.PreviousAvg, author.TrendingScore} {
		if f != nil {
			*f = data.Round2(*f)
		}
	}
	for _, b := range []*data.BookRating{author.BestBook, author.WorstBook} {
		if b != nil {
			b.AvgRating = data.Round2(b.AvgRating)
		}
	}
}
