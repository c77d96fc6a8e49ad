package repository

import (
	"context"

	"distrifoods/models"
)

// ProductRepositoryInterface defines the contract for product read operations
type ProductRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetBestSellers(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// CategoryRepositoryInterface defines the contract for category read operations
type CategoryRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
}

// BrandRepositoryInterface defines the contract for brand read operations
type BrandRepositoryInterface interface {
	GetAll(ctx context.Context) ([]models.Brand, error)
}

// BannerRepositoryInterface defines the contract for banner read operations
type BannerRepositoryInterface interface {
	GetByTypeAndPage(ctx context.Context, bannerType string, page string) ([]models.Banner, error)
}

// ContactMessageRepositoryInterface defines the contract for contact message operations
type ContactMessageRepositoryInterface interface {
	Insert(ctx context.Context, msg *models.ContactMessage) error
}

// PDFCatalogRepositoryInterface defines the contract for catalog definition operations
type PDFCatalogRepositoryInterface interface {
	// GetActive returns the newest active catalog definition, falling back to
	// the newest definition of any state when no active one exists.
	// Returns nil when no catalog definitions exist at all.
	GetActive(ctx context.Context) (*models.PDFCatalog, error)
}

// SettingsRepositoryInterface defines the contract for system settings reads
type SettingsRepositoryInterface interface {
	Get(ctx context.Context) (*models.SystemSettings, error)
}
