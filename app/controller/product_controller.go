package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"distrifoods/repository"
	"distrifoods/service"
)

// ProductController handles HTTP requests for products
type ProductController struct {
	store     *service.CachedStore
	repo      repository.ProductRepositoryInterface
	fetcher   service.ImageFetcherInterface
	preloader *service.ImagePreloader
}

// NewProductController creates a new ProductController
func NewProductController(
	store *service.CachedStore,
	repo repository.ProductRepositoryInterface,
	fetcher service.ImageFetcherInterface,
	preloader *service.ImagePreloader,
) *ProductController {
	return &ProductController{
		store:     store,
		repo:      repo,
		fetcher:   fetcher,
		preloader: preloader,
	}
}

// GetProducts handles GET /api/products
// Serves the cached product list and warms the image preloader with every
// product image URL.
func (c *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()

	products, err := c.store.GetProducts(ctx)
	if err != nil {
		log.Printf("❌ GetProducts: Error fetching products: %v", err)
		http.Error(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}

	// Fire-and-forget cache warming for the product images
	var urls []string
	for _, p := range products {
		if p.Image != "" {
			urls = append(urls, p.Image)
		}
	}
	c.preloader.Enqueue(urls)

	writeJSON(w, products)
}

// GetBestSellers handles GET /api/products/best-sellers
func (c *ProductController) GetBestSellers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()

	products, err := c.repo.GetBestSellers(ctx)
	if err != nil {
		log.Printf("❌ GetBestSellers: Error fetching best sellers: %v", err)
		http.Error(w, "Failed to fetch best sellers", http.StatusInternalServerError)
		return
	}

	writeJSON(w, products)
}

// validImageSizes is a map of valid image size values
var validImageSizes = map[string]bool{
	"thumb":  true,
	"medium": true,
}

// GetProductImage handles GET /api/products/{id}/image?size=thumb|medium
// Serves the product image optimized for delivery, from the disk cache when
// the preloader (or a previous request) already warmed it.
func (c *ProductController) GetProductImage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Path: /api/products/{id}/image
	path := strings.TrimPrefix(r.URL.Path, "/api/products/")
	id := strings.TrimSuffix(path, "/image")
	if id == "" || id == path {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	size := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("size")))
	if size == "" {
		size = "medium"
	}
	if !validImageSizes[size] {
		http.Error(w, "Invalid size. Valid sizes: thumb, medium", http.StatusBadRequest)
		return
	}

	ctx := context.Background()

	product, err := c.repo.GetByID(ctx, id)
	if err != nil {
		log.Printf("❌ GetProductImage: Error fetching product %s: %v", id, err)
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}
	if product == nil || product.Image == "" {
		http.Error(w, "Product image not found", http.StatusNotFound)
		return
	}

	cachePath := service.GetCachePath(product.ID, size)
	if service.CacheExists(cachePath) {
		data, err := service.ReadFromCache(cachePath)
		if err == nil {
			writeImage(w, data)
			return
		}
		log.Printf("⚠️  GetProductImage: Cache read failed for %s: %v", cachePath, err)
	}

	raw, _, err := c.fetcher.Fetch(ctx, product.Image)
	if err != nil {
		log.Printf("❌ GetProductImage: Failed to fetch image for product %s: %v", id, err)
		http.Error(w, "Failed to fetch image", http.StatusBadGateway)
		return
	}

	optimized, err := service.OptimizeImage(raw, size)
	if err != nil {
		log.Printf("❌ GetProductImage: Failed to optimize image for product %s: %v", id, err)
		http.Error(w, "Failed to process image", http.StatusInternalServerError)
		return
	}

	if err := service.SaveToCache(cachePath, optimized); err != nil {
		log.Printf("⚠️  GetProductImage: Failed to cache image for product %s: %v", id, err)
	}

	writeImage(w, optimized)
}

// GetPreloadStats handles GET /api/products/preload-stats
func (c *ProductController) GetPreloadStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, c.preloader.Stats())
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding JSON response: %v", err)
	}
}

// writeImage writes optimized JPEG bytes as an image response
func writeImage(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("❌ Error writing image response: %v", err)
	}
}
