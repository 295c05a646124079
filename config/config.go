package config

import "time"

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port     int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env      string `yaml:"env" env:"ENV" env-default:"development"`
		LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	} `yaml:"server"`
	Database struct {
		DSN            string `yaml:"dsn" env:"DSN"`
		MaxOpenConns   int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns   int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime    string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
		MigrateOnStart bool   `yaml:"migrate_on_start" env:"MIGRATEONSTART" env-default:"true"`
	} `yaml:"database"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS" env-default:"2"`
		Burst   int     `yaml:"burst" env:"BURST" env-default:"4"`
		Enabled bool    `yaml:"enabled" env:"LENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED" env-default:"true"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"USERNAME"`
		Password string `yaml:"password" env:"PASSWORD"`
	} `yaml:"basic_auth"`
	Catalog  Catalog  `yaml:"catalog"`
	Rankings Rankings `yaml:"rankings"`
	Ratings  Ratings  `yaml:"ratings"`
	Identity Identity `yaml:"identity"`
}

// Catalog holds the book listing settings.
type Catalog struct {
	PageSize        int           `yaml:"page_size" env:"CATALOG_PAGE_SIZE" env-default:"50"`
	RecentWindow    time.Duration `yaml:"recent_window" env:"CATALOG_RECENT_WINDOW" env-default:"168h"`
	PreviousWindow  time.Duration `yaml:"previous_window" env:"CATALOG_PREVIOUS_WINDOW" env-default:"336h"`
	RollingWindow   time.Duration `yaml:"rolling_window" env:"CATALOG_ROLLING_WINDOW" env-default:"720h"`
	YearSpan        int           `yaml:"year_span" env:"CATALOG_YEAR_SPAN" env-default:"100"`
	FiltersCacheTTL time.Duration `yaml:"filters_cache_ttl" env:"CATALOG_FILTERS_CACHE_TTL" env-default:"5m"`
}

// Rankings holds the author ranking settings.
type Rankings struct {
	Limit                  int           `yaml:"limit" env:"RANKINGS_LIMIT" env-default:"20"`
	PopularityThreshold    int           `yaml:"popularity_threshold" env:"RANKINGS_POPULARITY_THRESHOLD" env-default:"5"`
	TrendingRecentWindow   time.Duration `yaml:"trending_recent_window" env:"RANKINGS_TRENDING_RECENT_WINDOW" env-default:"720h"`
	TrendingPreviousWindow time.Duration `yaml:"trending_previous_window" env:"RANKINGS_TRENDING_PREVIOUS_WINDOW" env-default:"1440h"`
}

// Ratings holds the rating submission rules.
type Ratings struct {
	Cooldown        time.Duration `yaml:"cooldown" env:"RATINGS_COOLDOWN" env-default:"24h"`
	Min             int           `yaml:"min" env:"RATINGS_MIN" env-default:"1"`
	Max             int           `yaml:"max" env:"RATINGS_MAX" env-default:"10"`
	ReviewMaxLength int           `yaml:"review_max_length" env:"RATINGS_REVIEW_MAX_LENGTH" env-default:"1000"`
}

// Identity selects how anonymous raters are told apart.
type Identity struct {
	Strategy     string        `yaml:"strategy" env:"IDENTITY_STRATEGY" env-default:"fingerprint"`
	Secret       string        `yaml:"secret" env:"IDENTITY_SECRET"`
	CookieName   string        `yaml:"cookie_name" env:"IDENTITY_COOKIE_NAME" env-default:"librarium_rater"`
	CookieMaxAge time.Duration `yaml:"cookie_max_age" env:"IDENTITY_COOKIE_MAX_AGE" env-default:"8760h"`
	TrustProxy   bool          `yaml:"trust_proxy" env:"IDENTITY_TRUST_PROXY"`
}
