package repository

import (
	"context"
	"database/sql"
	"fmt"

	"distrifoods/db"
	"distrifoods/models"
)

// SettingsRepository handles database operations for system settings
type SettingsRepository struct{}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository() *SettingsRepository {
	return &SettingsRepository{}
}

// Ensure SettingsRepository implements SettingsRepositoryInterface
var _ SettingsRepositoryInterface = (*SettingsRepository)(nil)

// Get retrieves the single settings row, or nil when none exists
func (r *SettingsRepository) Get(ctx context.Context) (*models.SystemSettings, error) {
	query := `
		SELECT
			id,
			COALESCE(gemini_api_key, '') as gemini_api_key,
			ai_enabled,
			created_at,
			updated_at
		FROM system_settings
		LIMIT 1
	`

	var s models.SystemSettings
	err := db.DB.QueryRowContext(ctx, query).Scan(
		&s.ID,
		&s.GeminiAPIKey,
		&s.AIEnabled,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query system settings: %w", err)
	}
	return &s, nil
}
