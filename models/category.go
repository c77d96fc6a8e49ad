package models

import "time"

// Category represents a product category
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Image        string    `json:"image,omitempty"`
	ProductCount int       `json:"productCount"`
	Status       string    `json:"status"` // "active" or "inactive"
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
