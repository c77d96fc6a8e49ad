package router

import (
	"net/http"
	"strings"

	"distrifoods/app/controller"
)

type Controllers struct {
	Product   *controller.ProductController
	Category  *controller.CategoryController
	Brand     *controller.BrandController
	Banner    *controller.BannerController
	Contact   *controller.ContactController
	Catalog   *controller.CatalogController
	Assistant *controller.AssistantController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Products routes
	http.HandleFunc("/api/products", controllers.Product.GetProducts)

	// Best sellers
	http.HandleFunc("/api/products/best-sellers", controllers.Product.GetBestSellers)

	// Preload queue stats
	http.HandleFunc("/api/products/preload-stats", controllers.Product.GetPreloadStats)

	// Optimized product image
	http.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		// Check if this is the image endpoint
		if strings.HasSuffix(r.URL.Path, "/image") {
			controllers.Product.GetProductImage(w, r)
			return
		}
		// Otherwise, return 404
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Categories routes
	http.HandleFunc("/api/categories", controllers.Category.GetCategories)

	// Brands routes
	http.HandleFunc("/api/brands", controllers.Brand.GetBrands)

	// Banners routes
	http.HandleFunc("/api/banners", controllers.Banner.GetBanners)

	// Contact messages - handles POST (create)
	http.HandleFunc("/api/contact", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Contact.CreateMessage(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Catalog routes
	http.HandleFunc("/api/catalog", controllers.Catalog.GetActiveCatalog)

	// Rendered catalog HTML (consumed by the PDF printer)
	http.HandleFunc("/api/catalog/render", controllers.Catalog.RenderCatalog)

	// Catalog download (pdf or html)
	http.HandleFunc("/api/catalog/download", controllers.Catalog.DownloadCatalog)

	// Assistant search
	http.HandleFunc("/api/assistant/search", controllers.Assistant.Search)
}
