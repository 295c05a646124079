package main

import (
	"expvar"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/emzola/librarium/config"
	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/handler"
	"github.com/emzola/librarium/internal/identity"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/emzola/librarium/repository"
	"github.com/emzola/librarium/repository/postgres"
	"github.com/emzola/librarium/service"
	"github.com/jellydator/ttlcache/v3"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	logger  *jsonlog.Logger
	handler *handler.Handler
}

// @title Librarium API
// @version 1.0.0
// @description Book catalog with author rankings and anonymous ratings.
// @BasePath /
func main() {
	configPath := flag.String("config", "config.yml", "Path to the YAML configuration file")
	flag.Parse()

	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Decode(*configPath)
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
	level, _ := jsonlog.ParseLevel(cfg.Server.LogLevel)
	logger = jsonlog.New(os.Stdout, level)

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	if cfg.Database.MigrateOnStart {
		applied, err := postgres.Migrate(db)
		if err != nil {
			logger.PrintFatal(err, nil)
			os.Exit(1)
		}
		if applied {
			logger.PrintInfo("database migrations applied", nil)
		}
	}

	resolver, err := identity.New(identity.Options{
		Strategy:     cfg.Identity.Strategy,
		Secret:       cfg.Identity.Secret,
		CookieName:   cfg.Identity.CookieName,
		CookieMaxAge: cfg.Identity.CookieMaxAge,
		TrustProxy:   cfg.Identity.TrustProxy,
		SecureCookie: cfg.Server.Env == "production",
	})
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
	if cfg.Identity.Strategy == identity.StrategyFingerprint && cfg.Identity.Secret == "" {
		logger.PrintInfo("identity secret is empty, rater fingerprints are unkeyed", nil)
	}

	// Filter options cache
	cache := ttlcache.New(ttlcache.WithTTL[string, *data.FilterOptions](cfg.Catalog.FiltersCacheTTL))
	go cache.Start()
	defer cache.Stop()

	expvar.NewString("version").Set("1.0.0")
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	// Application layers
	repo := repository.New(db, cfg)
	svc := service.New(cfg, logger, repo, cache)

	a := &app{
		config:  cfg,
		logger:  logger,
		handler: handler.New(cfg, logger, svc, resolver),
	}

	// Start HTTP server
	err = a.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
		os.Exit(1)
	}
}
