package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"distrifoods/db"
	"distrifoods/models"
)

// PDFCatalogRepository handles database operations for catalog definitions
type PDFCatalogRepository struct{}

// NewPDFCatalogRepository creates a new PDFCatalogRepository
func NewPDFCatalogRepository() *PDFCatalogRepository {
	return &PDFCatalogRepository{}
}

// Ensure PDFCatalogRepository implements PDFCatalogRepositoryInterface
var _ PDFCatalogRepositoryInterface = (*PDFCatalogRepository)(nil)

const pdfCatalogColumns = `
	id,
	name,
	version,
	is_active,
	COALESCE(cover_page, '') as cover_page,
	COALESCE(back_page, '') as back_page,
	categories,
	created_at,
	updated_at
`

func scanPDFCatalog(row *sql.Row) (*models.PDFCatalog, error) {
	var c models.PDFCatalog
	var categoriesJSON []byte

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Version,
		&c.IsActive,
		&c.CoverPage,
		&c.BackPage,
		&categoriesJSON,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// The ordering structure is stored as JSONB. A malformed or null column
	// leaves Categories nil, which the generator treats as nothing to render.
	if len(categoriesJSON) > 0 {
		if err := json.Unmarshal(categoriesJSON, &c.Categories); err != nil {
			log.Printf("⚠️  Malformed categories JSON in catalog %s: %v", c.ID, err)
			c.Categories = nil
		}
	}
	return &c, nil
}

// GetActive returns the newest active catalog definition, falling back to the
// newest definition of any state. Returns nil when no definitions exist.
func (r *PDFCatalogRepository) GetActive(ctx context.Context) (*models.PDFCatalog, error) {
	query := `SELECT ` + pdfCatalogColumns + `
		FROM pdf_catalogs
		WHERE is_active = true
		ORDER BY created_at DESC
		LIMIT 1`

	catalog, err := scanPDFCatalog(db.DB.QueryRowContext(ctx, query))
	if err == nil {
		return catalog, nil
	}
	if err != sql.ErrNoRows {
		log.Printf("❌ Error querying active catalog: %v", err)
		return nil, fmt.Errorf("failed to query active catalog: %w", err)
	}

	// No active catalog, fall back to the most recent one
	fallback := `SELECT ` + pdfCatalogColumns + `
		FROM pdf_catalogs
		ORDER BY created_at DESC
		LIMIT 1`

	catalog, err = scanPDFCatalog(db.DB.QueryRowContext(ctx, fallback))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Printf("❌ Error querying fallback catalog: %v", err)
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	return catalog, nil
}
