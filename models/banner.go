package models

import "time"

// Banner represents a promotional banner shown on the site
type Banner struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	Type        string    `json:"type"` // "hero", "promotion", "sidebar", "footer"
	Page        string    `json:"page"` // "home", "products", "about", "contact", "all"
	Position    string    `json:"position"`
	IsActive    bool      `json:"isActive"`
	Order       int       `json:"order"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
