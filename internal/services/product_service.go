package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. events may be nil.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// ListProducts retrieves products, newest first.
func (s *ProductService) ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	return s.repo.GetAll(ctx, filter)
}

// GetProduct retrieves a single product. It returns (nil, nil) when there is none.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct creates a new product with its price normalised to two decimals.
func (s *ProductService) CreateProduct(ctx context.Context, cred repositories.Credential, input models.ProductInput) (*models.Product, error) {
	price, err := CanonicalPrice(input.Price)
	if err != nil {
		return nil, err
	}
	input.Price = price

	product, err := s.repo.Create(ctx, cred, input)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.events, EventProductCreated, product)
	return product, nil
}

// UpdateProduct applies a partial update to an existing product.
func (s *ProductService) UpdateProduct(ctx context.Context, cred repositories.Credential, id string, patch models.ProductPatch) (*models.Product, error) {
	if patch.Price != nil {
		price, err := CanonicalPrice(*patch.Price)
		if err != nil {
			return nil, err
		}
		patch.Price = &price
	}

	product, err := s.repo.Update(ctx, cred, id, patch)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.events, EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, cred repositories.Credential, id string) error {
	if err := s.repo.Delete(ctx, cred, id); err != nil {
		return err
	}
	publishEvent(ctx, s.events, EventProductDeleted, map[string]string{"id": id})
	return nil
}
