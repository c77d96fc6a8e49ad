package models

import "time"

// Product represents a product in the catalog
type Product struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"` // Category id (name in legacy rows)
	Image        string    `json:"image,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	IsBestSeller bool      `json:"isBestSeller"`
	Status       string    `json:"status"` // "active" or "inactive"
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
