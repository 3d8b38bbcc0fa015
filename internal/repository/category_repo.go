package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lost-and-found-api/internal/database"
	"github.com/lost-and-found-api/internal/models"
)

// categoryRepo is the concrete implementation of CategoryRepository
type categoryRepo struct {
	db *database.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *database.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

const categoryColumns = `id, name, description, icon, is_active, created_at, updated_at`

// Create inserts a new category
func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, description, icon, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		category.ID, category.Name, category.Description, category.Icon,
		category.IsActive, category.CreatedAt, category.UpdatedAt,
	)
	return err
}

// GetByName retrieves a category by its lowercase name
func (r *categoryRepo) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name,
	).Scan(
		&category.ID, &category.Name, &category.Description, &category.Icon,
		&category.IsActive, &category.CreatedAt, &category.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// List returns categories sorted by name, optionally only active ones
func (r *categoryRepo) List(ctx context.Context, activeOnly bool) ([]*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var category models.Category
		err := rows.Scan(
			&category.ID, &category.Name, &category.Description, &category.Icon,
			&category.IsActive, &category.CreatedAt, &category.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}
