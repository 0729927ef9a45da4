package repositories

import (
	"context"

	"storefront/internal/models"
)

// AdminRepository defines the interface for admin account data access.
// Lookups of unknown accounts return an error wrapping ErrNotFound.
type AdminRepository interface {
	Create(ctx context.Context, admin *models.AdminUser) error
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetByID(ctx context.Context, id string) (*models.AdminUser, error)
}
