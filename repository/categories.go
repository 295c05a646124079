package repository

import (
	"context"
	"time"

	"github.com/emzola/librarium/data"
)

type categories interface {
	GetAllCategories(ctx context.Context) ([]*data.Category, error)
}

// GetAllCategories retrieves all category records ordered by name.
func (r *repository) GetAllCategories(ctx context.Context) ([]*data.Category, error) {
	query := `
		SELECT id, name
		FROM categories
		ORDER BY name ASC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := []*data.Category{}
	for rows.Next() {
		var category data.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}
