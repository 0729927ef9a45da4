package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductFilter narrows a product listing.
type ProductFilter struct {
	FeaturedOnly bool
	Category     string
}

// ProductRepository defines the interface for product data access.
// Reads are public; writes carry the caller's credential to the store.
type ProductRepository interface {
	GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	// GetByID returns (nil, nil) when no product has the given id.
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, cred Credential, input models.ProductInput) (*models.Product, error)
	Update(ctx context.Context, cred Credential, id string, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, cred Credential, id string) error
}
