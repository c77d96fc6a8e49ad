package models

import "time"

// Brand represents a brand carried by the distributor
type Brand struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Logo        string    `json:"logo,omitempty"`
	Website     string    `json:"website,omitempty"`
	Status      string    `json:"status"` // "active" or "inactive"
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
