package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/sqlq"
)

type rankings interface {
	GetPopularAuthors(ctx context.Context) ([]*data.RankedAuthor, error)
	GetTopRatedAuthors(ctx context.Context) ([]*data.RankedAuthor, error)
	GetTrendingAuthors(ctx context.Context, now time.Time) ([]*data.RankedAuthor, error)
	GetAuthorBookRatings(ctx context.Context, authorID int64) ([]*data.BookRating, error)
}

// ratedAuthors starts a statement over every rating of every author's books.
func ratedAuthors(columns ...string) *sqlq.SelectBuilder {
	return sqlq.Select(columns...).
		From("authors").
		Join("books", "books.author_id = authors.id").
		Join("ratings", "ratings.book_id = books.id").
		GroupBy("authors.id")
}

// GetPopularAuthors ranks authors by the number of their ratings above the
// popularity threshold. Authors with no such rating are left out.
func (r *repository) GetPopularAuthors(ctx context.Context) ([]*data.RankedAuthor, error) {
	cfg := r.config.Rankings
	votes := "COUNT(DISTINCT ratings.id) FILTER (WHERE ratings.rating > ?)"
	query, args := ratedAuthors("authors.id", "authors.name").
		Column(sqlq.Expr(votes+" AS popularity_votes", cfg.PopularityThreshold)).
		Columns("COUNT(ratings.id) AS total_ratings", "AVG(ratings.rating)::float8 AS avg_rating").
		Having(sqlq.Expr(votes+" > 0", cfg.PopularityThreshold)).
		OrderBy("popularity_votes DESC", "authors.id ASC").
		Limit(cfg.Limit).
		Build()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	authors := []*data.RankedAuthor{}
	for rows.Next() {
		var author data.RankedAuthor
		err := rows.Scan(
			&author.ID,
			&author.Name,
			&author.PopularityVotes,
			&author.TotalRatings,
			&author.AvgRating,
		)
		if err != nil {
			return nil, err
		}
		authors = append(authors, &author)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

// bookAverages lists the rated books matching author with their mean rating.
func bookAverages(author sqlq.Sqlizer) *sqlq.SelectBuilder {
	return sqlq.Select("b.id", "b.title", "AVG(rt.rating)::float8 AS avg_rating").
		From("books b").
		Join("ratings rt", "rt.book_id = b.id").
		Where(author).
		GroupBy("b.id")
}

// suffixed appends fixed SQL text to an expression.
func suffixed(e sqlq.Sqlizer, suffix string) sqlq.Sqlizer {
	text, args := e.ToSQL()
	return sqlq.Expr(text+suffix, args...)
}

// GetTopRatedAuthors ranks authors by the mean of all their ratings. The
// best and worst book of each author are resolved in the same statement.
func (r *repository) GetTopRatedAuthors(ctx context.Context) ([]*data.RankedAuthor, error) {
	ranked := ratedAuthors("authors.id", "authors.name",
		"AVG(ratings.rating)::float8 AS avg_rating", "COUNT(ratings.id) AS total_ratings").
		OrderBy("avg_rating DESC", "authors.id ASC").
		Limit(r.config.Rankings.Limit)
	sameAuthor := sqlq.Expr("b.author_id = ranked.id")
	query, args := sqlq.Select(
		"ranked.id", "ranked.name", "ranked.avg_rating", "ranked.total_ratings",
		"best.id", "best.title", "best.avg_rating",
		"worst.id", "worst.title", "worst.avg_rating",
	).
		FromSelect(ranked, "ranked").
		LeftJoinLateral(bookAverages(sameAuthor).OrderBy("avg_rating DESC", "b.id ASC").Limit(1), "best").
		LeftJoinLateral(bookAverages(sameAuthor).OrderBy("avg_rating ASC", "b.id DESC").Limit(1), "worst").
		OrderBy("ranked.avg_rating DESC", "ranked.id ASC").
		Build()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	authors := []*data.RankedAuthor{}
	for rows.Next() {
		var (
			author      data.RankedAuthor
			best, worst nullBookRating
		)
		err := rows.Scan(
			&author.ID,
			&author.Name,
			&author.AvgRating,
			&author.TotalRatings,
			&best.ID, &best.Title, &best.AvgRating,
			&worst.ID, &worst.Title, &worst.AvgRating,
		)
		if err != nil {
			return nil, err
		}
		author.BestBook = best.bookRating()
		author.WorstBook = worst.bookRating()
		authors = append(authors, &author)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

type nullBookRating struct {
	ID        sql.NullInt64
	Title     sql.NullString
	AvgRating sql.NullFloat64
}

func (n nullBookRating) bookRating() *data.BookRating {
	if !n.ID.Valid {
		return nil
	}
	return &data.BookRating{ID: n.ID.Int64, Title: n.Title.String, AvgRating: n.AvgRating.Float64}
}

// GetTrendingAuthors ranks authors by how much their average rating moved
// between the previous and the recent window, weighted by recent activity.
// Authors without ratings in both windows are left out.
func (r *repository) GetTrendingAuthors(ctx context.Context, now time.Time) ([]*data.RankedAuthor, error) {
	cfg := r.config.Rankings
	recentSince := now.Add(-cfg.TrendingRecentWindow)
	previousSince := now.Add(-cfg.TrendingPreviousWindow)
	recentAvg := sqlq.Expr("(AVG(ratings.rating) FILTER (WHERE ratings.created_at >= ?))::float8", recentSince)
	previousAvg := sqlq.Expr("(AVG(ratings.rating) FILTER (WHERE ratings.created_at >= ? AND ratings.created_at < ?))::float8", previousSince, recentSince)
	recentCount := sqlq.Expr("COUNT(ratings.id) FILTER (WHERE ratings.created_at >= ?)", recentSince)

	recentSQL, recentArgs := recentAvg.ToSQL()
	previousSQL, previousArgs := previousAvg.ToSQL()
	countSQL, countArgs := recentCount.ToSQL()
	scoreArgs := append(append(append([]any{}, recentArgs...), previousArgs...), countArgs...)
	score := sqlq.Expr("(("+recentSQL+" - "+previousSQL+") * LN((1 + "+countSQL+")::float8)) AS trending_score", scoreArgs...)

	query, args := ratedAuthors("authors.id", "authors.name", "COUNT(ratings.id) AS total_ratings").
		Column(suffixed(recentAvg, " AS recent_avg")).
		Column(suffixed(previousAvg, " AS previous_avg")).
		Column(suffixed(recentCount, " AS recent_count")).
		Column(score).
		Having(suffixed(recentAvg, " IS NOT NULL"), suffixed(previousAvg, " IS NOT NULL")).
		OrderBy("trending_score DESC", "authors.id ASC").
		Limit(cfg.Limit).
		Build()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	authors := []*data.RankedAuthor{}
	for rows.Next() {
		var author data.RankedAuthor
		err := rows.Scan(
			&author.ID,
			&author.Name,
			&author.TotalRatings,
			&author.RecentAvg,
			&author.PreviousAvg,
			&author.RecentCount,
			&author.TrendingScore,
		)
		if err != nil {
			return nil, err
		}
		authors = append(authors, &author)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}

// GetAuthorBookRatings retrieves an author's rated books ordered from the
// highest mean rating to the lowest, ties broken by book id.
func (r *repository) GetAuthorBookRatings(ctx context.Context, authorID int64) ([]*data.BookRating, error) {
	query, args := bookAverages(sqlq.Eq("b.author_id", authorID)).
		OrderBy("avg_rating DESC", "b.id ASC").
		Build()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.BookRating{}
	for rows.Next() {
		var book data.BookRating
		if err := rows.Scan(&book.ID, &book.Title, &book.AvgRating); err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}
