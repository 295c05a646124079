package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/emzola/librarium/config"
	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/data/dto"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListBooks(ctx context.Context, filter data.BookFilter) ([]*data.Book, data.Metadata, error) {
	args := m.Called(ctx, filter)
	books, _ := args.Get(0).([]*data.Book)
	return books, args.Get(1).(data.Metadata), args.Error(2)
}

func (m *mockService) GetFilterOptions(ctx context.Context) (*data.FilterOptions, error) {
	args := m.Called(ctx)
	options, _ := args.Get(0).(*data.FilterOptions)
	return options, args.Error(1)
}

func (m *mockService) ListBooksByAuthor(ctx context.Context, authorID int64) ([]*data.BookTitle, error) {
	args := m.Called(ctx, authorID)
	books, _ := args.Get(0).([]*data.BookTitle)
	return books, args.Error(1)
}

func (m *mockService) ListAuthors(ctx context.Context) ([]*data.Author, error) {
	args := m.Called(ctx)
	authors, _ := args.Get(0).([]*data.Author)
	return authors, args.Error(1)
}

func (m *mockService) TopAuthors(ctx context.Context, tab data.RankingTab) ([]*data.RankedAuthor, error) {
	args := m.Called(ctx, tab)
	authors, _ := args.Get(0).([]*data.RankedAuthor)
	return authors, args.Error(1)
}

func (m *mockService) SubmitRating(ctx context.Context, input dto.CreateRatingRequestBody, userIdentifier string) (*data.Rating, error) {
	args := m.Called(ctx, input, userIdentifier)
	rating, _ := args.Get(0).(*data.Rating)
	return rating, args.Error(1)
}

// staticResolver identifies every request as the same rater.
type staticResolver string

func (s staticResolver) Resolve(http.ResponseWriter, *http.Request) (string, error) {
	return string(s), nil
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.Server.Env = "testing"
	cfg.BasicAuth.Username = "admin"
	cfg.BasicAuth.Password = "pa55word"
	cfg.Cors.TrustedOrigins = []string{"http://localhost:3000"}
	return cfg
}

func newTestHandler(t *testing.T, cfg config.Config) (http.Handler, *mockService) {
	t.Helper()
	svc := new(mockService)
	h := New(cfg, jsonlog.New(io.Discard, jsonlog.LevelInfo), svc, staticResolver("rater-1"))
	t.Cleanup(func() { svc.AssertExpectations(t) })
	return h.Routes(), svc
}

// do sends a request through the router and decodes the JSON response body.
func do(t *testing.T, routes http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rr := httptest.NewRecorder()
	routes.ServeHTTP(rr, req)
	var decoded map[string]interface{}
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &decoded))
	}
	return rr, decoded
}
