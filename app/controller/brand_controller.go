package controller

import (
	"context"
	"log"
	"net/http"

	"distrifoods/service"
)

// BrandController handles HTTP requests for brands
type BrandController struct {
	store *service.CachedStore
}

// NewBrandController creates a new BrandController
func NewBrandController(store *service.CachedStore) *BrandController {
	return &BrandController{store: store}
}

// GetBrands handles GET /api/brands
func (c *BrandController) GetBrands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	brands, err := c.store.GetBrands(context.Background())
	if err != nil {
		log.Printf("❌ GetBrands: Error fetching brands: %v", err)
		http.Error(w, "Failed to fetch brands", http.StatusInternalServerError)
		return
	}

	writeJSON(w, brands)
}
