package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/emzola/librarium/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPopularAuthors(t *testing.T) {
	r, mock := newMockRepository(t)
	mock.ExpectQuery(`COUNT\(DISTINCT ratings.id\) FILTER \(WHERE ratings.rating > \$1\) AS popularity_votes.*HAVING COUNT\(DISTINCT ratings.id\) FILTER \(WHERE ratings.rating > \$2\) > 0.*ORDER BY popularity_votes DESC, authors.id ASC LIMIT \$3`).
		WithArgs(5, 5, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "popularity_votes", "total_ratings", "avg_rating"}).
			AddRow(int64(1), "Ursula K. Le Guin", int64(12), int64(15), 7.4).
			AddRow(int64(2), "Iain M. Banks", int64(3), int64(9), 5.1))

	authors, err := r.GetPopularAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	require.NotNil(t, authors[0].PopularityVotes)
	assert.Equal(t, int64(12), *authors[0].PopularityVotes)
	assert.Equal(t, int64(15), authors[0].TotalRatings)
	assert.Nil(t, authors[0].TrendingScore)
}

func TestGetTopRatedAuthors(t *testing.T) {
	r, mock := newMockRepository(t)
	columns := []string{"id", "name", "avg_rating", "total_ratings", "best_id", "best_title", "best_avg", "worst_id", "worst_title", "worst_avg"}
	mock.ExpectQuery(`FROM \(SELECT authors.id, authors.name.*LIMIT \$1\) AS ranked LEFT JOIN LATERAL .* AS best ON true LEFT JOIN LATERAL .* AS worst ON true ORDER BY ranked.avg_rating DESC, ranked.id ASC`).
		WithArgs(20, 1, 1).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(4), "Octavia Butler", 9.25, int64(8), int64(10), "Kindred", 9.5, int64(11), "Dawn", 9.0).
			AddRow(int64(6), "Unread", 7.0, int64(1), nil, nil, nil, nil, nil, nil))

	authors, err := r.GetTopRatedAuthors(ctx)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, &data.BookRating{ID: 10, Title: "Kindred", AvgRating: 9.5}, authors[0].BestBook)
	assert.Equal(t, &data.BookRating{ID: 11, Title: "Dawn", AvgRating: 9.0}, authors[0].WorstBook)
	assert.Nil(t, authors[1].BestBook)
	assert.Nil(t, authors[1].WorstBook)
}

func TestGetTrendingAuthors(t *testing.T) {
	r, mock := newMockRepository(t)
	recent := testNow.Add(-30 * 24 * time.Hour)
	previous := testNow.Add(-60 * 24 * time.Hour)
	mock.ExpectQuery(`AS trending_score FROM authors .* HAVING .* IS NOT NULL AND .* IS NOT NULL\) ORDER BY trending_score DESC, authors.id ASC LIMIT \$12`).
		WithArgs(
			recent, previous, recent, recent,
			recent, previous, recent, recent,
			recent, previous, recent,
			20,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_ratings", "recent_avg", "previous_avg", "recent_count", "trending_score"}).
			AddRow(int64(1), "Ann Leckie", int64(20), 9.0, 5.0, int64(10), 9.59))

	authors, err := r.GetTrendingAuthors(ctx, testNow)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, 9.0, *authors[0].RecentAvg)
	assert.Equal(t, 5.0, *authors[0].PreviousAvg)
	assert.Equal(t, int64(10), *authors[0].RecentCount)
	assert.InDelta(t, 9.58, *authors[0].TrendingScore, 0.1)
}

func TestGetAuthorBookRatings(t *testing.T) {
	r, mock := newMockRepository(t)
	mock.ExpectQuery(`SELECT b.id, b.title, AVG\(rt.rating\)::float8 AS avg_rating FROM books b INNER JOIN ratings rt ON rt.book_id = b.id WHERE b.author_id = \$1 GROUP BY b.id ORDER BY avg_rating DESC, b.id ASC`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "avg_rating"}).
			AddRow(int64(10), "Kindred", 9.5).
			AddRow(int64(11), "Dawn", 9.0))

	books, err := r.GetAuthorBookRatings(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, []*data.BookRating{{ID: 10, Title: "Kindred", AvgRating: 9.5}, {ID: 11, Title: "Dawn", AvgRating: 9.0}}, books)
}
