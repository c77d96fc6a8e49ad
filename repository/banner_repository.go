package repository

import (
	"context"
	"fmt"
	"log"

	"distrifoods/db"
	"distrifoods/models"
)

// BannerRepository handles database operations for promotional banners
type BannerRepository struct{}

// NewBannerRepository creates a new BannerRepository
func NewBannerRepository() *BannerRepository {
	return &BannerRepository{}
}

// Ensure BannerRepository implements BannerRepositoryInterface
var _ BannerRepositoryInterface = (*BannerRepository)(nil)

// GetByTypeAndPage retrieves active banners of a given type, ordered for display.
// When page is non-empty, banners targeted at that page or at "all" pages match.
func (r *BannerRepository) GetByTypeAndPage(ctx context.Context, bannerType string, page string) ([]models.Banner, error) {
	query := `
		SELECT
			id,
			title,
			COALESCE(description, '') as description,
			COALESCE(image, '') as image,
			type,
			page,
			COALESCE(position, '') as position,
			is_active,
			"order",
			COALESCE(link, '') as link,
			created_at,
			updated_at
		FROM banners
		WHERE type = $1 AND is_active = true
	`
	args := []interface{}{bannerType}

	if page != "" {
		query += ` AND page IN ($2, 'all')`
		args = append(args, page)
	}
	query += ` ORDER BY "order" ASC`

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ Error querying banners (type=%s, page=%s): %v", bannerType, page, err)
		return nil, fmt.Errorf("failed to query banners: %w", err)
	}
	defer rows.Close()

	var banners []models.Banner
	for rows.Next() {
		var b models.Banner
		err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Description,
			&b.Image,
			&b.Type,
			&b.Page,
			&b.Position,
			&b.IsActive,
			&b.Order,
			&b.Link,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			log.Printf("❌ Error scanning banner row: %v", err)
			continue
		}
		banners = append(banners, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate banners: %w", err)
	}
	return banners, nil
}
