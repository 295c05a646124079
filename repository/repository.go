package repository

import (
	"database/sql"

	"github.com/emzola/librarium/config"
)

type Repository interface {
	books
	authors
	categories
	ratings
	rankings
}

// repository defines the app's repository layer.
type repository struct {
	db     *sql.DB
	config config.Config
}

// New creates a new instance of Repository.
func New(db *sql.DB, cfg config.Config) *repository {
	return &repository{db: db, config: cfg}
}
