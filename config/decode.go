package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/emzola/librarium/internal/identity"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Decode loads a .env file when one exists, then reads the YAML file at path
// and overlays environment variables. A missing YAML file is not an error;
// the configuration then comes from the environment and defaults alone.
func Decode(path string) (Config, error) {
	var cfg Config
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	_, statErr := os.Stat(path)
	switch {
	case path != "" && statErr == nil:
		err = cleanenv.ReadConfig(path, &cfg)
	default:
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Bounds enforced by the ratings table's CHECK constraints. Rating settings
// must stay inside them or valid submissions would fail at insert time.
const (
	StoredRatingMin       = 1
	StoredRatingMax       = 10
	StoredReviewMaxLength = 1000
)

// Validate rejects settings the application cannot run with.
func (c Config) Validate() error {
	if _, err := jsonlog.ParseLevel(c.Server.LogLevel); err != nil {
		return fmt.Errorf("config: server log_level: %w", err)
	}
	switch {
	case c.Database.DSN == "":
		return errors.New("config: database dsn must be provided")
	case c.Catalog.PageSize < 1:
		return errors.New("config: catalog page_size must be positive")
	case c.Catalog.RecentWindow <= 0 || c.Catalog.PreviousWindow <= c.Catalog.RecentWindow:
		return errors.New("config: catalog previous_window must be greater than recent_window")
	case c.Catalog.RollingWindow <= 0:
		return errors.New("config: catalog rolling_window must be positive")
	case c.Catalog.YearSpan < 0:
		return errors.New("config: catalog year_span must not be negative")
	case c.Rankings.Limit < 1:
		return errors.New("config: rankings limit must be positive")
	case c.Rankings.TrendingRecentWindow <= 0 || c.Rankings.TrendingPreviousWindow <= c.Rankings.TrendingRecentWindow:
		return errors.New("config: rankings trending_previous_window must be greater than trending_recent_window")
	case c.Ratings.Cooldown < 0:
		return errors.New("config: ratings cooldown must not be negative")
	case c.Ratings.Min < StoredRatingMin || c.Ratings.Max > StoredRatingMax:
		return fmt.Errorf("config: ratings min and max must lie within %d-%d", StoredRatingMin, StoredRatingMax)
	case c.Ratings.Min > c.Ratings.Max:
		return errors.New("config: ratings min must not exceed max")
	case c.Ratings.ReviewMaxLength < 0 || c.Ratings.ReviewMaxLength > StoredReviewMaxLength:
		return fmt.Errorf("config: ratings review_max_length must lie within 0-%d", StoredReviewMaxLength)
	case c.Identity.Strategy != identity.StrategyFingerprint && c.Identity.Strategy != identity.StrategyCookie:
		return fmt.Errorf("config: unknown identity strategy %q", c.Identity.Strategy)
	}
	return nil
}
