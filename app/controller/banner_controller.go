package controller

import (
	"context"
	"log"
	"net/http"
	"strings"

	"distrifoods/repository"
)

// BannerController handles HTTP requests for promotional banners
type BannerController struct {
	repo repository.BannerRepositoryInterface
}

// NewBannerController creates a new BannerController
func NewBannerController(repo repository.BannerRepositoryInterface) *BannerController {
	return &BannerController{repo: repo}
}

// validBannerTypes is a map of valid banner type values
var validBannerTypes = map[string]bool{
	"hero":      true,
	"promotion": true,
	"sidebar":   true,
	"footer":    true,
}

// validBannerPages is a map of valid banner page values
var validBannerPages = map[string]bool{
	"home":     true,
	"products": true,
	"about":    true,
	"contact":  true,
	"all":      true,
}

// GetBanners handles GET /api/banners?type=hero&page=home
// type is required; page is optional and matches banners targeted at that
// page or at all pages.
func (c *BannerController) GetBanners(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bannerType := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type")))
	page := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("page")))

	if bannerType == "" {
		http.Error(w, "type parameter is required. Valid types: hero, promotion, sidebar, footer", http.StatusBadRequest)
		return
	}
	if !validBannerTypes[bannerType] {
		log.Printf("❌ GetBanners: Invalid type: %s", bannerType)
		http.Error(w, "Invalid type. Valid types: hero, promotion, sidebar, footer", http.StatusBadRequest)
		return
	}
	if page != "" && !validBannerPages[page] {
		log.Printf("❌ GetBanners: Invalid page: %s", page)
		http.Error(w, "Invalid page. Valid pages: home, products, about, contact, all", http.StatusBadRequest)
		return
	}

	banners, err := c.repo.GetByTypeAndPage(context.Background(), bannerType, page)
	if err != nil {
		log.Printf("❌ GetBanners: Error fetching banners: %v", err)
		http.Error(w, "Failed to fetch banners", http.StatusInternalServerError)
		return
	}

	writeJSON(w, banners)
}
