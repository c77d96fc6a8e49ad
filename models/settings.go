package models

import "time"

// SystemSettings holds the single site-wide settings row.
// The AI assistant is only available when AIEnabled is true and an API key is set.
type SystemSettings struct {
	ID           string    `json:"id"`
	GeminiAPIKey string    `json:"geminiApiKey,omitempty"`
	AIEnabled    bool      `json:"aiEnabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
