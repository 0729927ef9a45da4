package repositories

import (
	"context"

	"storefront/internal/models"
)

// MessageRepository defines the interface for contact message data access.
type MessageRepository interface {
	GetAll(ctx context.Context, cred Credential) ([]models.Message, error)
	Create(ctx context.Context, input models.MessageInput) (*models.Message, error)
	Delete(ctx context.Context, cred Credential, id string) error
}
