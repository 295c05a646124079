package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/sqlq"
)

type books interface {
	GetAllBooks(ctx context.Context, filter data.BookFilter, now time.Time) ([]*data.Book, data.Metadata, error)
	GetBookRef(ctx context.Context, bookID int64) (*data.BookRef, error)
	GetBooksByAuthor(ctx context.Context, authorID int64) ([]*data.BookTitle, error)
	GetStoreLocations(ctx context.Context) ([]string, error)
}

const avgRating = "AVG(ratings.rating)"

// listBooksQuery builds the filtered, sorted and paginated listing statement.
// Each row carries the window count of all matching books.
func (r *repository) listBooksQuery(filter data.BookFilter, now time.Time) *sqlq.SelectBuilder {
	cfg := r.config.Catalog
	recentSince := now.Add(-cfg.RecentWindow)
	previousSince := now.Add(-cfg.PreviousWindow)

	q := sqlq.Select(
		"count(*) OVER()",
		"books.id", "books.title", "books.isbn", "books.publisher", "books.publication_year",
		"books.availability_status", "books.store_location", "COALESCE(books.description, '')",
		"books.price", "books.created_at", "authors.id", "authors.name",
		avgRating+"::float8 AS avg_rating",
		"COUNT(ratings.id) AS total_votes",
	).
		Column(sqlq.Expr("("+avgRating+" FILTER (WHERE ratings.created_at >= ?))::float8 AS recent_rating", recentSince)).
		Column(sqlq.Expr("("+avgRating+" FILTER (WHERE ratings.created_at >= ? AND ratings.created_at < ?))::float8 AS previous_rating", previousSince, recentSince)).
		From("books").
		Join("authors", "authors.id = books.author_id").
		LeftJoin("ratings", "ratings.book_id = books.id")

	if filter.Search != "" {
		q.Where(sqlq.Or(
			sqlq.ILike("books.title", filter.Search),
			sqlq.ILike("books.isbn", filter.Search),
			sqlq.ILike("books.publisher", filter.Search),
			sqlq.ILike("authors.name", filter.Search),
		))
	}
	if len(filter.Categories) > 0 {
		inCategory := func() *sqlq.SelectBuilder {
			return sqlq.Select("1").From("book_category").Where(sqlq.Expr("book_category.book_id = books.id"))
		}
		switch filter.CategoryLogic {
		case data.CategoryLogicAnd:
			for _, id := range filter.Categories {
				q.Where(sqlq.Exists(inCategory().Where(sqlq.Eq("book_category.category_id", id))))
			}
		default:
			q.Where(sqlq.Exists(inCategory().Where(sqlq.Any("book_category.category_id", filter.Categories))))
		}
	}
	if filter.AuthorID > 0 {
		q.Where(sqlq.Eq("books.author_id", filter.AuthorID))
	}
	if filter.YearFrom > 0 {
		q.Where(sqlq.Gte("books.publication_year", filter.YearFrom))
	}
	if filter.YearTo > 0 {
		q.Where(sqlq.Lte("books.publication_year", filter.YearTo))
	}
	if filter.Availability != "" {
		q.Where(sqlq.Eq("books.availability_status", filter.Availability))
	}
	if filter.Location != "" {
		q.Where(sqlq.Eq("books.store_location", filter.Location))
	}

	q.GroupBy("books.id", "authors.id")
	if filter.RatingBounded() {
		from, to := filter.RatingRange()
		q.Having(sqlq.Gte(avgRating, from), sqlq.Lte(avgRating, to))
	}

	switch filter.Filters.Sort {
	case data.SortVotes:
		q.OrderBy("total_votes DESC")
	case data.SortRecent:
		q.OrderByExpr(sqlq.Expr(avgRating+" FILTER (WHERE ratings.created_at >= ?) DESC NULLS LAST", now.Add(-cfg.RollingWindow)))
	case data.SortAlphabetical:
		q.OrderBy("books.title ASC")
	default:
		q.OrderBy("avg_rating DESC NULLS LAST")
	}
	return q.OrderBy("books.id ASC").
		Limit(filter.Filters.Limit()).
		Offset(filter.Filters.Offset())
}

// GetAllBooks retrieves a page of books matching filter, annotated with their
// rating statistics, author and categories.
func (r *repository) GetAllBooks(ctx context.Context, filter data.BookFilter, now time.Time) ([]*data.Book, data.Metadata, error) {
	query, args := r.listBooksQuery(filter, now).Build()
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	defer rows.Close()
	totalRecords := 0
	books := []*data.Book{}
	for rows.Next() {
		var book data.Book
		err := rows.Scan(
			&totalRecords,
			&book.ID,
			&book.Title,
			&book.ISBN,
			&book.Publisher,
			&book.PublicationYear,
			&book.AvailabilityStatus,
			&book.StoreLocation,
			&book.Description,
			&book.Price,
			&book.CreatedAt,
			&book.Author.ID,
			&book.Author.Name,
			&book.AvgRating,
			&book.TotalVotes,
			&book.RecentRating,
			&book.PreviousRating,
		)
		if err != nil {
			return nil, data.Metadata{}, err
		}
		book.Categories = []*data.Category{}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, data.Metadata{}, err
	}
	if err = r.attachCategories(ctx, books); err != nil {
		return nil, data.Metadata{}, err
	}
	metadata := data.CalculateMetadata(totalRecords, filter.Filters.Page, filter.Filters.PageSize)
	return books, metadata, nil
}

// attachCategories loads the categories of books in one query, ordered by name.
func (r *repository) attachCategories(ctx context.Context, books []*data.Book) error {
	if len(books) == 0 {
		return nil
	}
	byID := make(map[int64]*data.Book, len(books))
	ids := make([]int64, 0, len(books))
	for _, b := range books {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}
	query, args := sqlq.Select("book_category.book_id", "categories.id", "categories.name").
		From("book_category").
		Join("categories", "categories.id = book_category.category_id").
		Where(sqlq.Any("book_category.book_id", ids)).
		OrderBy("categories.name ASC", "categories.id ASC").
		Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			bookID   int64
			category data.Category
		)
		if err := rows.Scan(&bookID, &category.ID, &category.Name); err != nil {
			return err
		}
		if b, ok := byID[bookID]; ok {
			b.Categories = append(b.Categories, &category)
		}
	}
	return rows.Err()
}

// GetBookRef retrieves a book's id and author id.
func (r *repository) GetBookRef(ctx context.Context, bookID int64) (*data.BookRef, error) {
	if bookID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, author_id
		FROM books
		WHERE id = $1`
	var ref data.BookRef
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, bookID).Scan(&ref.ID, &ref.AuthorID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &ref, nil
}

// GetBooksByAuthor retrieves the id and title of every book by an author, ordered by title.
func (r *repository) GetBooksByAuthor(ctx context.Context, authorID int64) ([]*data.BookTitle, error) {
	query := `
		SELECT id, title
		FROM books
		WHERE author_id = $1
		ORDER BY title ASC, id ASC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	books := []*data.BookTitle{}
	for rows.Next() {
		var book data.BookTitle
		if err := rows.Scan(&book.ID, &book.Title); err != nil {
			return nil, err
		}
		books = append(books, &book)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// GetStoreLocations retrieves the distinct store locations in alphabetical order.
func (r *repository) GetStoreLocations(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT store_location
		FROM books
		WHERE store_location <> ''
		ORDER BY store_location ASC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	locations := []string{}
	for rows.Next() {
		var location string
		if err := rows.Scan(&location); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return locations, nil
}
