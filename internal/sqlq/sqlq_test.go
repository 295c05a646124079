package sqlq

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestBuildFullStatement(t *testing.T) {
	q := Select("books.id", "books.title").
		Column(Expr("AVG(CASE WHEN ratings.created_at >= ? THEN ratings.rating END) AS recent_rating", "t0")).
		From("books").
		Join("authors", "authors.id = books.author_id").
		LeftJoin("ratings", "ratings.book_id = books.id").
		Where(Eq("books.author_id", int64(7)), nil, And()).
		Where(Or(ILike("books.title", "go"), ILike("authors.name", "go"))).
		GroupBy("books.id", "authors.id").
		Having(Gte("AVG(ratings.rating)", 2.5)).
		OrderBy("books.title ASC", "books.id ASC").
		Limit(50).
		Offset(100)

	sql, args := q.Build()

	assert.Equal(t,
		"SELECT books.id, books.title, AVG(CASE WHEN ratings.created_at >= $1 THEN ratings.rating END) AS recent_rating"+
			" FROM books INNER JOIN authors ON authors.id = books.author_id"+
			" LEFT JOIN ratings ON ratings.book_id = books.id"+
			" WHERE (books.author_id = $2 AND (books.title ILIKE $3 OR authors.name ILIKE $4))"+
			" GROUP BY books.id, authors.id"+
			" HAVING AVG(ratings.rating) >= $5"+
			" ORDER BY books.title ASC, books.id ASC LIMIT $6 OFFSET $7",
		sql)
	assert.Equal(t, []any{"t0", int64(7), "%go%", "%go%", 2.5, 50, 100}, args)
}

func TestExistsNestsArguments(t *testing.T) {
	sub := Select("1").From("book_category bc").
		Where(Expr("bc.book_id = books.id"), Eq("bc.category_id", int64(3)))
	q := Select("books.id").From("books").
		Where(Eq("books.publication_year", 2001), Exists(sub))

	sql, args := q.Build()

	assert.Equal(t,
		"SELECT books.id FROM books WHERE (books.publication_year = $1 AND EXISTS (SELECT 1 FROM book_category bc WHERE (bc.book_id = books.id AND bc.category_id = $2)))",
		sql)
	assert.Equal(t, []any{2001, int64(3)}, args)
}

func TestAnyWrapsArray(t *testing.T) {
	sql, args := Any("bc.category_id", []int64{1, 2}).ToSQL()
	assert.Equal(t, "bc.category_id = ANY(?)", sql)
	assert.Equal(t, []any{pq.Array([]int64{1, 2})}, args)
}

func TestSubqueryAlias(t *testing.T) {
	sub := Select("b.title").From("books b").Where(Expr("b.author_id = authors.id")).OrderBy("b.id ASC").Limit(1)
	sql, args := Sub(sub, "best_title").ToSQL()
	assert.Equal(t, "(SELECT b.title FROM books b WHERE b.author_id = authors.id ORDER BY b.id ASC LIMIT ?) AS best_title", sql)
	assert.Equal(t, []any{1}, args)
}

func TestLateralJoinOverDerivedTable(t *testing.T) {
	ranked := Select("authors.id").From("authors").Where(Gt("authors.id", 0)).Limit(20)
	best := Select("b.id").From("books b").Where(Expr("b.author_id = ranked.id")).Limit(1)
	q := Select("ranked.id", "best.id").
		FromSelect(ranked, "ranked").
		LeftJoinLateral(best, "best").
		Where(Lt("ranked.id", 100))

	sql, args := q.Build()

	assert.Equal(t,
		"SELECT ranked.id, best.id FROM (SELECT authors.id FROM authors WHERE authors.id > $1 LIMIT $2) AS ranked"+
			" LEFT JOIN LATERAL (SELECT b.id FROM books b WHERE b.author_id = ranked.id LIMIT $3) AS best ON true"+
			" WHERE ranked.id < $4",
		sql)
	assert.Equal(t, []any{0, 20, 1, 100}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\% \_pure\_ a\\b`, EscapeLike(`100% _pure_ a\b`))

	sql, args := ILike("books.isbn", "97_%").ToSQL()
	assert.Equal(t, "books.isbn ILIKE ?", sql)
	assert.Equal(t, []any{`%97\_\%%`}, args)
}

func TestEmptyJunctions(t *testing.T) {
	sql, args := Or().ToSQL()
	assert.Empty(t, sql)
	assert.Empty(t, args)

	sql, _ = And(Eq("a", 1)).ToSQL()
	assert.Equal(t, "a = ?", sql)

	sql, _ = Select("id").From("authors").Build()
	assert.Equal(t, "SELECT id FROM authors", sql)
}

func TestRebind(t *testing.T) {
	assert.Equal(t, "a = $1 AND b IN ($2, $3)", Rebind("a = ? AND b IN (?, ?)"))
	assert.Equal(t, "SELECT 1", Rebind("SELECT 1"))
}
