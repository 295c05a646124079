package service

import (
	"time"

	"github.com/emzola/librarium/config"
	"github.com/emzola/librarium/data"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/emzola/librarium/repository"
	"github.com/jellydator/ttlcache/v3"
)

type Service interface {
	books
	authors
	ratings
}

// service defines the service layer.
type service struct {
	config config.Config
	logger *jsonlog.Logger
	repo   repository.Repository
	cache  *ttlcache.Cache[string, *data.FilterOptions]
	now    func() time.Time
}

// New creates a new instance of Service. The cache holds the listing's
// filter options and its TTL decides how stale they may get.
func New(cfg config.Config, logger *jsonlog.Logger, repo repository.Repository, cache *ttlcache.Cache[string, *data.FilterOptions]) *service {
	return &service{
		config: cfg,
		logger: logger,
		repo:   repo,
		cache:  cache,
		now:    time.Now,
	}
}
