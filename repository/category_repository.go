package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"distrifoods/db"
	"distrifoods/models"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct{}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{}
}

// Ensure CategoryRepository implements CategoryRepositoryInterface
var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)

const categoryColumns = `
	id,
	name,
	COALESCE(description, '') as description,
	COALESCE(image, '') as image,
	COALESCE(product_count, 0) as product_count,
	status,
	created_at,
	updated_at
`

// GetAll retrieves all categories, newest first
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY created_at DESC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying categories: %v", err)
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Description,
			&c.Image,
			&c.ProductCount,
			&c.Status,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			log.Printf("❌ Error scanning category row: %v", err)
			continue
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category, or nil when it does not exist
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	var c models.Category
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.Image,
		&c.ProductCount,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category %s: %w", id, err)
	}
	return &c, nil
}
