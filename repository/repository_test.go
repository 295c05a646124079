package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/emzola/librarium/config"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

func testConfig() config.Config {
	var cfg config.Config
	cfg.Catalog = config.Catalog{
		PageSize:       50,
		RecentWindow:   7 * 24 * time.Hour,
		PreviousWindow: 14 * 24 * time.Hour,
		RollingWindow:  30 * 24 * time.Hour,
		YearSpan:       100,
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

// newMockRepository returns a repository backed by sqlmock. Unmet expectations fail the test.
func newMockRepository(t *testing.T) (*repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return New(db, testConfig()), mock
}

var ctx = context.Background()
