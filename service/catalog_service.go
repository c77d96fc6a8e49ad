package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"distrifoods/layout"
	"distrifoods/models"
	"distrifoods/repository"
	"distrifoods/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrNoCatalog is returned when no catalog definition exists at all
var ErrNoCatalog = fmt.Errorf("no catalog available")

// CatalogService generates the downloadable PDF catalog: it resolves the
// active catalog definition, lays out the document, renders it to HTML and
// prints it to PDF through headless Chrome.
type CatalogService struct {
	catalogRepo repository.PDFCatalogRepositoryInterface
	store       *CachedStore
	fetcher     ImageFetcherInterface
	baseURL     string // Base URL for the render endpoint (e.g., "http://localhost:8080")
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	catalogRepo repository.PDFCatalogRepositoryInterface,
	store *CachedStore,
	fetcher ImageFetcherInterface,
	baseURL string,
) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		store:       store,
		fetcher:     fetcher,
		baseURL:     baseURL,
	}
}

// detectChromePath detects the path to the Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// BuildDocument resolves the active catalog definition plus the product and
// category records it references and lays out the document. Each referenced
// image is fetched and embedded as a data URI; unavailable images degrade to
// placeholders inside the layout.
func (s *CatalogService) BuildDocument(ctx context.Context) (*layout.Document, *models.PDFCatalog, error) {
	catalog, err := s.catalogRepo.GetActive(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load catalog definition: %w", err)
	}
	if catalog == nil {
		return nil, nil, ErrNoCatalog
	}

	products, err := s.store.GetProducts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load products: %w", err)
	}
	categories, err := s.store.GetCategories(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load categories: %w", err)
	}

	// Images are fetched one at a time as the layout advances; the layout
	// never fails on a missing image.
	fetch := func(url string) (string, bool) {
		data, mimeType, err := s.fetcher.Fetch(ctx, url)
		if err != nil {
			log.Printf("⚠️  Catalog image unavailable (%s): %v", truncateURL(url), err)
			return "", false
		}
		uri := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))
		return uri, true
	}

	doc := layout.Generate(catalog, products, categories, fetch, time.Now())
	log.Printf("✓ Catalog document laid out: %q v%s, %d pages", catalog.Name, catalog.Version, len(doc.Pages))
	return doc, catalog, nil
}

// FileName builds the download filename for a generated catalog
func FileName(catalog *models.PDFCatalog) string {
	return fmt.Sprintf("%s_v%s.pdf", utils.SanitizeFileName(catalog.Name), catalog.Version)
}

// RenderCatalogHTML lays out the active catalog and renders it as paged HTML.
// The same HTML is served to browsers and printed to PDF by chromedp.
func (s *CatalogService) RenderCatalogHTML(ctx context.Context) (string, error) {
	doc, _, err := s.BuildDocument(ctx)
	if err != nil {
		return "", err
	}

	templatePath := filepath.Join("templates", "catalog.html")
	// html/template strips data: URIs from src attributes, so embedded
	// images pass through an explicit safeURL func.
	tmpl, err := template.New(filepath.Base(templatePath)).Funcs(template.FuncMap{
		"safeURL": func(s string) template.URL { return template.URL(s) },
	}).ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// GeneratePDF prints the rendered catalog HTML to PDF using chromedp
func (s *CatalogService) GeneratePDF(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/api/catalog/render", s.baseURL)

	var pdfBuf []byte
	// Embedded images are data URIs, so a short settle after WaitReady is
	// enough for fonts and layout.
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // 210mm x 297mm at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(1500*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69". Page breaks come from the template's
			// page-break-after CSS.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
