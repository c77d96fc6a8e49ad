// Package layout computes the paginated structure of a PDF catalog document.
// It decides what goes on which page and where; turning the result into bytes
// is the renderer's concern.
package layout

import (
	"fmt"
	"sort"
	"time"

	"distrifoods/models"
	"distrifoods/utils"
)

// Page geometry in millimeters (A4 portrait)
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	margin        = 20.0
	thumbSize     = 30.0
	minRowHeight  = 35.0
	headerHeight  = 40.0
	productHeight = 50.0

	descColumnX     = margin + thumbSize + 10
	descMaxChars    = 60 // per line, at 10pt in the description column
	descMaxLines    = 2
	categoryDescMax = 100
)

// ImageFunc resolves an image URL to an embeddable data URI. ok is false when
// the image is unavailable; the engine substitutes a placeholder and continues.
type ImageFunc func(url string) (dataURI string, ok bool)

// BlockType discriminates the kinds of layout blocks
type BlockType string

const (
	BlockText        BlockType = "text"
	BlockImage       BlockType = "image"
	BlockPlaceholder BlockType = "placeholder"
	BlockBadge       BlockType = "badge"
)

// Block is a single positioned element on a page. Coordinates are in mm from
// the top-left corner.
type Block struct {
	Type BlockType
	X    float64
	Y    float64
	W    float64
	H    float64

	Text     string // text, placeholder caption, badge label
	FontSize float64
	Bold     bool
	Align    string // "left", "center", "right"

	DataURI string // image blocks only
}

// Page holds the blocks laid out on one page
type Page struct {
	Blocks []Block
}

// Document is the fully laid-out catalog document
type Document struct {
	Pages []Page
}

// engine tracks the vertical cursor while blocks are emitted
type engine struct {
	fetch       ImageFunc
	generatedAt time.Time
	doc         *Document
	y           float64
}

// Generate lays out a catalog document from a definition and the product and
// category records it references. The result is deterministic for identical
// inputs: same ordering, same numbering, same page breaks. Unresolvable
// references are skipped; unavailable images become placeholders.
func Generate(
	catalog *models.PDFCatalog,
	products []models.Product,
	categories []models.Category,
	fetch ImageFunc,
	generatedAt time.Time,
) *Document {
	e := &engine{
		fetch:       fetch,
		generatedAt: generatedAt,
		doc:         &Document{},
	}

	productByID := make(map[string]*models.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}
	categoryByID := make(map[string]*models.Category, len(categories))
	for i := range categories {
		categoryByID[categories[i].ID] = &categories[i]
	}

	e.addPage()
	e.coverPage(catalog)

	// The about page is suppressed entirely when no back page is configured,
	// so the document never carries a blank page.
	if catalog.BackPage != "" {
		e.addPage()
		e.aboutPage(catalog)
	}

	e.categorySections(catalog, productByID, categoryByID)
	e.stampFooters()

	return e.doc
}

func (e *engine) addPage() {
	e.doc.Pages = append(e.doc.Pages, Page{})
	e.y = margin
}

func (e *engine) page() *Page {
	return &e.doc.Pages[len(e.doc.Pages)-1]
}

// checkNewPage starts a new page when fewer than required mm remain below the
// cursor. Called before any block of known minimum height so a single entry
// never splits across pages.
func (e *engine) checkNewPage(required float64) {
	if e.y+required > PageHeight-margin {
		e.addPage()
	}
}

func (e *engine) text(x, y, size float64, bold bool, align, s string) {
	e.page().Blocks = append(e.page().Blocks, Block{
		Type:     BlockText,
		X:        x,
		Y:        y,
		FontSize: size,
		Bold:     bold,
		Align:    align,
		Text:     s,
	})
}

func (e *engine) image(x, y, w, h float64, dataURI string) {
	e.page().Blocks = append(e.page().Blocks, Block{
		Type:    BlockImage,
		X:       x,
		Y:       y,
		W:       w,
		H:       h,
		DataURI: dataURI,
	})
}

func (e *engine) placeholder(x, y, w, h float64, caption string) {
	e.page().Blocks = append(e.page().Blocks, Block{
		Type: BlockPlaceholder,
		X:    x,
		Y:    y,
		W:    w,
		H:    h,
		Text: caption,
	})
}

// titleBlock renders the text cover: catalog name, version and generation date
func (e *engine) titleBlock(catalog *models.PDFCatalog) {
	e.text(PageWidth/2, 50, 24, true, "center", catalog.Name)
	e.text(PageWidth/2, 70, 16, false, "center", fmt.Sprintf("Version: %s", catalog.Version))
	e.text(PageWidth/2, 90, 12, false, "center", fmt.Sprintf("Generated: %s", e.generatedAt.Format("1/2/2006")))
}

func (e *engine) coverPage(catalog *models.PDFCatalog) {
	if catalog.CoverPage == "" {
		e.titleBlock(catalog)
		return
	}

	if uri, ok := e.fetch(catalog.CoverPage); ok {
		e.image(0, 0, PageWidth, PageHeight, uri)
		return
	}

	e.titleBlock(catalog)
	e.placeholder(margin, 110, PageWidth-2*margin, 100, "Cover Image Not Available")
}

func (e *engine) aboutPage(catalog *models.PDFCatalog) {
	if uri, ok := e.fetch(catalog.BackPage); ok {
		e.image(0, 0, PageWidth, PageHeight, uri)
		return
	}

	e.text(margin, e.y, 18, true, "left", "About Us")
	e.y += 20
	e.text(margin, e.y, 12, false, "left", "Welcome to our product catalog.")
	e.y += 10
	e.text(margin, e.y, 12, false, "left", "We provide quality products and excellent service.")
	e.y += 20
	e.placeholder(margin, e.y, PageWidth-2*margin, 100, "About Us Image Not Available")
}

func (e *engine) categorySections(
	catalog *models.PDFCatalog,
	productByID map[string]*models.Product,
	categoryByID map[string]*models.Category,
) {
	entries := make([]models.CategoryOrder, len(catalog.Categories))
	copy(entries, catalog.Categories)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Order < entries[j].Order
	})

	// Section numbering counts rendered categories only, so a skipped
	// unresolvable reference leaves no gap.
	catSeq := 0
	for _, entry := range entries {
		category, ok := categoryByID[entry.CategoryID]
		if !ok {
			continue
		}

		if catSeq == 0 {
			// Product sections always begin on a fresh page after the
			// cover and about pages.
			e.addPage()
		} else if entry.NewPageStart && e.y > margin {
			e.addPage()
		}

		e.checkNewPage(headerHeight)
		catSeq++

		e.text(margin, e.y, 16, true, "left", fmt.Sprintf("%d. %s", catSeq, category.Name))
		e.y += 15

		if category.Description != "" {
			e.text(margin, e.y, 10, false, "left", utils.Truncate(category.Description, categoryDescMax))
			e.y += 15
		}

		e.productEntries(entry, catSeq, productByID)

		e.y += 15
	}
}

func (e *engine) productEntries(entry models.CategoryOrder, catSeq int, productByID map[string]*models.Product) {
	included := make([]models.ProductOrder, 0, len(entry.Products))
	for _, po := range entry.Products {
		if po.Included {
			included = append(included, po)
		}
	}
	sort.SliceStable(included, func(i, j int) bool {
		return included[i].Order < included[j].Order
	})

	prodSeq := 0
	for _, po := range included {
		product, ok := productByID[po.ProductID]
		if !ok {
			continue
		}

		e.checkNewPage(productHeight)
		prodSeq++

		e.text(margin, e.y, 12, true, "left", fmt.Sprintf("%d.%d %s", catSeq, prodSeq, product.Title))
		e.y += 10

		// The thumbnail and its fallback placeholder share the same
		// bounding box, so layout is identical either way.
		switch {
		case product.Image == "":
			e.placeholder(margin, e.y, thumbSize, thumbSize, "No Image")
		default:
			if uri, ok := e.fetch(product.Image); ok {
				e.image(margin, e.y, thumbSize, thumbSize, uri)
			} else {
				e.placeholder(margin, e.y, thumbSize, thumbSize, "Image Failed")
			}
		}

		if product.Description != "" {
			lines := utils.WrapText(product.Description, descMaxChars)
			if len(lines) > descMaxLines {
				lines = lines[:descMaxLines]
			}
			lineY := e.y + 5
			for _, line := range lines {
				e.text(descColumnX, lineY, 10, false, "left", line)
				lineY += 5
			}
		}

		if product.Price != nil {
			e.text(descColumnX, e.y+20, 10, true, "left", utils.FormatPrice(*product.Price))
		}

		if product.IsBestSeller {
			e.page().Blocks = append(e.page().Blocks, Block{
				Type:     BlockBadge,
				X:        PageWidth - 50,
				Y:        e.y,
				W:        30,
				H:        8,
				Text:     "BEST SELLER",
				FontSize: 7,
			})
		}

		rowHeight := thumbSize + 10
		if rowHeight < minRowHeight {
			rowHeight = minRowHeight
		}
		e.y += rowHeight
	}
}

// stampFooters writes "Page i of n" bottom-right on every laid-out page
func (e *engine) stampFooters() {
	total := len(e.doc.Pages)
	for i := range e.doc.Pages {
		e.doc.Pages[i].Blocks = append(e.doc.Pages[i].Blocks, Block{
			Type:     BlockText,
			X:        PageWidth - margin,
			Y:        PageHeight - 10,
			FontSize: 9,
			Align:    "right",
			Text:     fmt.Sprintf("Page %d of %d", i+1, total),
		})
	}
}
