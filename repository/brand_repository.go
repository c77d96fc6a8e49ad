package repository

import (
	"context"
	"fmt"
	"log"

	"distrifoods/db"
	"distrifoods/models"
)

// BrandRepository handles database operations for brands
type BrandRepository struct{}

// NewBrandRepository creates a new BrandRepository
func NewBrandRepository() *BrandRepository {
	return &BrandRepository{}
}

// Ensure BrandRepository implements BrandRepositoryInterface
var _ BrandRepositoryInterface = (*BrandRepository)(nil)

// GetAll retrieves all brands, newest first
func (r *BrandRepository) GetAll(ctx context.Context) ([]models.Brand, error) {
	query := `
		SELECT
			id,
			name,
			COALESCE(description, '') as description,
			COALESCE(logo, '') as logo,
			COALESCE(website, '') as website,
			status,
			created_at,
			updated_at
		FROM brands
		ORDER BY created_at DESC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		log.Printf("❌ Error querying brands: %v", err)
		return nil, fmt.Errorf("failed to query brands: %w", err)
	}
	defer rows.Close()

	var brands []models.Brand
	for rows.Next() {
		var b models.Brand
		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Description,
			&b.Logo,
			&b.Website,
			&b.Status,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			log.Printf("❌ Error scanning brand row: %v", err)
			continue
		}
		brands = append(brands, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate brands: %w", err)
	}
	return brands, nil
}
