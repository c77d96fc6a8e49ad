package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"distrifoods/db"
	"distrifoods/models"

	"github.com/google/uuid"
)

// ContactMessageRepository handles database operations for contact messages
type ContactMessageRepository struct{}

// NewContactMessageRepository creates a new ContactMessageRepository
func NewContactMessageRepository() *ContactMessageRepository {
	return &ContactMessageRepository{}
}

// Ensure ContactMessageRepository implements ContactMessageRepositoryInterface
var _ ContactMessageRepositoryInterface = (*ContactMessageRepository)(nil)

// Insert stores a new contact message. The id, status and timestamps are
// assigned here; the caller only provides name, email and message.
func (r *ContactMessageRepository) Insert(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = uuid.NewString()
	msg.Status = "new"
	now := time.Now().UTC()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	query := `
		INSERT INTO contact_messages (id, name, email, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := db.DB.ExecContext(ctx, query,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Message,
		msg.Status,
		msg.CreatedAt,
		msg.UpdatedAt,
	)
	if err != nil {
		log.Printf("❌ Error inserting contact message from %s: %v", msg.Email, err)
		return fmt.Errorf("failed to insert contact message: %w", err)
	}

	log.Printf("✅ Contact message stored (id=%s, from=%s)", msg.ID, msg.Email)
	return nil
}
