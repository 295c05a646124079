package handler

import (
	"github.com/emzola/librarium/config"
	"github.com/emzola/librarium/internal/identity"
	"github.com/emzola/librarium/internal/jsonlog"
	"github.com/emzola/librarium/service"
)

// Handler defines Handler layer.
type Handler struct {
	config   config.Config
	logger   *jsonlog.Logger
	service  service.Service
	identity identity.Resolver
}

// New creates a new instance of Handler. The resolver decides which
// anonymous rater a rating submission belongs to.
func New(cfg config.Config, logger *jsonlog.Logger, service service.Service, resolver identity.Resolver) *Handler {
	return &Handler{
		config:   cfg,
		logger:   logger,
		service:  service,
		identity: resolver,
	}
}
