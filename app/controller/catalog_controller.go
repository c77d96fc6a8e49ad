package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"distrifoods/repository"
	"distrifoods/service"
)

// CatalogController handles HTTP requests for the PDF catalog
type CatalogController struct {
	catalogRepo    repository.PDFCatalogRepositoryInterface
	catalogService *service.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(
	catalogRepo repository.PDFCatalogRepositoryInterface,
	catalogService *service.CatalogService,
) *CatalogController {
	return &CatalogController{
		catalogRepo:    catalogRepo,
		catalogService: catalogService,
	}
}

// validCatalogFormats is a map of valid download format values
var validCatalogFormats = map[string]bool{
	"pdf":  true,
	"html": true,
}

// GetActiveCatalog handles GET /api/catalog
// Returns the active catalog definition, falling back to the newest one.
func (c *CatalogController) GetActiveCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	catalog, err := c.catalogRepo.GetActive(context.Background())
	if err != nil {
		log.Printf("❌ GetActiveCatalog: Error fetching catalog: %v", err)
		http.Error(w, "Failed to fetch catalog", http.StatusInternalServerError)
		return
	}
	if catalog == nil {
		http.Error(w, "No catalog available", http.StatusNotFound)
		return
	}

	writeJSON(w, catalog)
}

// RenderCatalog handles GET /api/catalog/render
// Returns the paged catalog HTML; chromedp prints this page to PDF.
func (c *CatalogController) RenderCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	htmlContent, err := c.catalogService.RenderCatalogHTML(context.Background())
	if err != nil {
		if errors.Is(err, service.ErrNoCatalog) {
			http.Error(w, "No catalog available", http.StatusNotFound)
			return
		}
		log.Printf("❌ RenderCatalog: Error rendering HTML: %v", err)
		http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(htmlContent)); err != nil {
		log.Printf("❌ RenderCatalog: Error writing HTML response: %v", err)
	}
}

// DownloadCatalog handles GET /api/catalog/download?format=pdf|html
func (c *CatalogController) DownloadCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx := context.Background()

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "pdf"
	}
	if !validCatalogFormats[format] {
		log.Printf("❌ DownloadCatalog: Invalid format: %s", format)
		http.Error(w, "Invalid format. Valid formats: pdf, html", http.StatusBadRequest)
		return
	}

	catalog, err := c.catalogRepo.GetActive(ctx)
	if err != nil {
		log.Printf("❌ DownloadCatalog: Error fetching catalog: %v", err)
		http.Error(w, "Failed to fetch catalog", http.StatusInternalServerError)
		return
	}
	if catalog == nil {
		http.Error(w, "No catalog available", http.StatusNotFound)
		return
	}

	switch format {
	case "html":
		htmlContent, err := c.catalogService.RenderCatalogHTML(ctx)
		if err != nil {
			log.Printf("❌ DownloadCatalog: Error rendering HTML: %v", err)
			http.Error(w, "Failed to render catalog", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(htmlContent)); err != nil {
			log.Printf("❌ DownloadCatalog: Error writing HTML response: %v", err)
		}

	case "pdf":
		pdfData, err := c.catalogService.GeneratePDF(ctx)
		if err != nil {
			log.Printf("❌ DownloadCatalog: Error generating PDF: %v", err)
			http.Error(w, "Failed to generate PDF. Please try again.", http.StatusInternalServerError)
			return
		}

		filename := service.FileName(catalog)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfData); err != nil {
			log.Printf("❌ DownloadCatalog: Error writing PDF response: %v", err)
		}
	}
}
