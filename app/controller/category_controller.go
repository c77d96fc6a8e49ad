package controller

import (
	"context"
	"log"
	"net/http"

	"distrifoods/service"
)

// CategoryController handles HTTP requests for categories
type CategoryController struct {
	store *service.CachedStore
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(store *service.CachedStore) *CategoryController {
	return &CategoryController{store: store}
}

// GetCategories handles GET /api/categories
func (c *CategoryController) GetCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	categories, err := c.store.GetCategories(context.Background())
	if err != nil {
		log.Printf("❌ GetCategories: Error fetching categories: %v", err)
		http.Error(w, "Failed to fetch categories", http.StatusInternalServerError)
		return
	}

	writeJSON(w, categories)
}
