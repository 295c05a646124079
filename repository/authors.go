package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/librarium/data"
)

type authors interface {
	GetAuthor(ctx context.Context, authorID int64) (*data.Author, error)
	GetAllAuthors(ctx context.Context) ([]*data.Author, error)
}

// GetAuthor retrieves an author record.
func (r *repository) GetAuthor(ctx context.Context, authorID int64) (*data.Author, error) {
	if authorID < 1 {
		return nil, ErrRecordNotFound
	}
	query := `
		SELECT id, name
		FROM authors
		WHERE id = $1`
	var author data.Author
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, authorID).Scan(&author.ID, &author.Name)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &author, nil
}

// GetAllAuthors retrieves all author records ordered by name.
func (r *repository) GetAllAuthors(ctx context.Context) ([]*data.Author, error) {
	query := `
		SELECT id, name
		FROM authors
		ORDER BY name ASC, id ASC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	authors := []*data.Author{}
	for rows.Next() {
		var author data.Author
		if err := rows.Scan(&author.ID, &author.Name); err != nil {
			return nil, err
		}
		authors = append(authors, &author)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return authors, nil
}
