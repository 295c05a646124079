package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/emzola/librarium/config"
	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/jellydator/ttlcache/v3"
	"github.com/stretchr/testify/mock"
)

var (
	ctx     = context.Background()
	testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) GetAllBooks(ctx context.Context, filter data.BookFilter, now time.Time) ([]*data.Book, data.Metadata, error) {
	args := m.Called(ctx, filter, now)
	books, _ := args.Get(0).([]*data.Book)
	return books, args.Get(1).(data.Metadata), args.Error(2)
}

func (m *mockRepository) GetBookRef(ctx context.Context, bookID int64) (*data.BookRef, error) {
	args := m.Called(ctx, bookID)
	book, _ := args.Get(0).(*data.BookRef)
	return book, args.Error(1)
}

func (m *mockRepository) GetBooksByAuthor(ctx context.Context, authorID int64) ([]*data.BookTitle, error) {
	args := m.Called(ctx, authorID)
	books, _ := args.Get(0).([]*data.BookTitle)
	return books, args.Error(1)
}

func (m *mockRepository) GetStoreLocations(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	locations, _ := args.Get(0).([]string)
	return locations, args.Error(1)
}

func (m *mockRepository) GetAuthor(ctx context.Context, authorID int64) (*data.Author, error) {
	args := m.Called(ctx, authorID)
	author, _ := args.Get(0).(*data.Author)
	return author, args.Error(1)
}

func (m *mockRepository) GetAllAuthors(ctx context.Context) ([]*data.Author, error) {
	args := m.Called(ctx)
	authors, _ := args.Get(0).([]*data.Author)
	return authors, args.Error(1)
}

func (m *mockRepository) GetAllCategories(ctx context.Context) ([]*data.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*data.Category)
	return categories, args.Error(1)
}

func (m *mockRepository) GetLatestRatingForUser(ctx context.Context, userIdentifier string) (*data.Rating, error) {
	args := m.Called(ctx, userIdentifier)
	rating, _ := args.Get(0).(*data.Rating)
	return rating, args.Error(1)
}

func (m *mockRepository) RatingExistsForUser(ctx context.Context, bookID int64, userIdentifier string) (bool, error) {
	args := m.Called(ctx, bookID, userIdentifier)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) CreateRating(ctx context.Context, rating *data.Rating) error {
	args := m.Called(ctx, rating)
	return args.Error(0)
}

func (m *mockRepository) GetPopularAuthors(ctx context.Context) ([]*data.RankedAuthor, error) {
	args := m.Called(ctx)
	authors, _ := args.Get(0).([]*data.RankedAuthor)
	return authors, args.Error(1)
}

func (m *mockRepository) GetTopRatedAuthors(ctx context.Context) ([]*data.RankedAuthor, error) {
	args := m.Called(ctx)
	authors, _ := args.Get(0).([]*data.RankedAuthor)
	return authors, args.Error(1)
}

func (m *mockRepository) GetTrendingAuthors(ctx context.Context, now time.Time) ([]*data.RankedAuthor, error) {
	args := m.Called(ctx, now)
	authors, _ := args.Get(0).([]*data.RankedAuthor)
	return authors, args.Error(1)
}

func (m *mockRepository) GetAuthorBookRatings(ctx context.Context, authorID int64) ([]*data.BookRating, error) {
	args := m.Called(ctx, authorID)
	books, _ := args.Get(0).([]*data.BookRating)
	return books, args.Error(1)
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.Catalog = config.Catalog{
		PageSize:        50,
		RecentWindow:    7 * 24 * time.Hour,
		PreviousWindow:  14 * 24 * time.Hour,
		RollingWindow:   30 * 24 * time.Hour,
		YearSpan:        100,
		FiltersCacheTTL: 5 * time.Minute,
	}
	cfg.Rankings = config.Rankings{
		Limit:                  20,
		PopularityThreshold:    5,
		TrendingRecentWindow:   30 * 24 * time.Hour,
		TrendingPreviousWindow: 60 * 24 * time.Hour,
	}
	cfg.Ratings = config.Ratings{Cooldown: 24 * time.Hour, Min: 1, Max: 10, ReviewMaxLength: 1000}
	return cfg
}

// newTestService returns a service over a mock repository with the clock fixed at testNow.
func newTestService(t *testing.T, out io.Writer) (*service, *mockRepository) {
	t.Helper()
	repo := new(mockRepository)
	cache := ttlcache.New(ttlcache.WithTTL[string, *data.FilterOptions](5 * time.Minute))
	if out == nil {
		out = io.Discard
	}
	s := New(testConfig(), jsonlog.New(out, jsonlog.LevelInfo), repo, cache)
	s.now = func() time.Time { return testNow }
	t.Cleanup(func() { repo.AssertExpectations(t) })
	return s, repo
}
