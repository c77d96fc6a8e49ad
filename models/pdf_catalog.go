package models

import "time"

// ProductOrder references a product inside a category section of a PDF catalog.
// A product can be ordered but excluded from the rendered document.
type ProductOrder struct {
	ProductID string `json:"productId"`
	Order     int    `json:"order"`
	Included  bool   `json:"included"`
}

// CategoryOrder references a category section of a PDF catalog, with its
// ordered products. CategoryName is a display-name snapshot taken when the
// catalog was assembled.
type CategoryOrder struct {
	CategoryID   string         `json:"categoryId"`
	CategoryName string         `json:"categoryName"`
	Order        int            `json:"order"`
	NewPageStart bool           `json:"newPageStart"`
	Products     []ProductOrder `json:"products,omitempty"`
}

// PDFCatalog represents a catalog definition: which categories and products
// appear in the generated document and in what order
type PDFCatalog struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Version    string          `json:"version"`
	IsActive   bool            `json:"isActive"`
	CoverPage  string          `json:"coverPage,omitempty"`
	BackPage   string          `json:"backPage,omitempty"`
	Categories []CategoryOrder `json:"categories,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
