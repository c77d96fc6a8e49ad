package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"distrifoods/db"
	"distrifoods/models"
)

// ProductRepository handles database operations for products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `
	id,
	title,
	COALESCE(description, '') as description,
	COALESCE(category, '') as category,
	COALESCE(image, '') as image,
	price,
	is_best_seller,
	status,
	created_at,
	updated_at
`

func scanProducts(rows *sql.Rows) ([]models.Product, error) {
	var products []models.Product
	for rows.Next() {
		var p models.Product
		var price sql.NullFloat64

		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Category,
			&p.Image,
			&price,
			&p.IsBestSeller,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			log.Printf("❌ Error scanning product row: %v", err)
			continue
		}

		if price.Valid {
			v := price.Float64
			p.Price = &v
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

// GetAll retrieves all products, newest first
func (r *ProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying products: %v", err)
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetBestSellers retrieves active best-seller products, newest first
func (r *ProductRepository) GetBestSellers(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products
		WHERE is_best_seller = true AND status = 'active'
		ORDER BY created_at DESC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying best sellers: %v", err)
		return nil, fmt.Errorf("failed to query best sellers: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// GetByID retrieves a single product, or nil when it does not exist
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	var p models.Product
	var price sql.NullFloat64
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Category,
		&p.Image,
		&price,
		&p.IsBestSeller,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product %s: %w", id, err)
	}

	if price.Valid {
		v := price.Float64
		p.Price = &v
	}
	return &p, nil
}
