package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It enforces the same policy as the hosted store: anyone may read, only
// authenticated callers may write.
type MockProductRepository struct {
	products map[string]models.Product
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products: make(map[string]models.Product),
		now:      time.Now,
	}
}

// SetClock replaces the clock used to stamp createdAt.
func (r *MockProductRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

// GetAll returns products, newest first.
func (r *MockProductRepository) GetAll(_ context.Context, filter ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if filter.FeaturedOnly && !p.IsFeatured {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		productList = append(productList, cloneProduct(p))
	}
	sort.SliceStable(productList, func(i, j int) bool {
		return productList[i].CreatedAt.After(productList[j].CreatedAt)
	})
	return productList, nil
}

// GetByID returns a product by its ID, or (nil, nil) if there is none.
func (r *MockProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	product = cloneProduct(product)
	return &product, nil
}

// Create adds a new product.
func (r *MockProductRepository) Create(_ context.Context, cred Credential, input models.ProductInput) (*models.Product, error) {
	if cred.Anonymous() {
		return nil, policyViolation("products")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product := productFromInput(input)
	product.ID = uuid.New().String()
	product.CreatedAt = r.now()
	r.products[product.ID] = product

	product = cloneProduct(product)
	return &product, nil
}

// Update merges the set fields of patch into an existing product.
func (r *MockProductRepository) Update(_ context.Context, cred Credential, id string, patch models.ProductPatch) (*models.Product, error) {
	if cred.Anonymous() {
		return nil, policyViolation("products")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("failed to update product: product with ID %s %w", id, ErrNotFound)
	}
	applyProductPatch(&product, patch)
	r.products[id] = product

	product = cloneProduct(product)
	return &product, nil
}

// Delete removes a product by its ID.
func (r *MockProductRepository) Delete(_ context.Context, cred Credential, id string) error {
	if cred.Anonymous() {
		return policyViolation("products")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

func cloneProduct(p models.Product) models.Product {
	if p.Images != nil {
		p.Images = append([]string{}, p.Images...)
	}
	return p
}

func policyViolation(table string) error {
	return fmt.Errorf("%w: new row violates row-level security policy for table %q", ErrPermissionDenied, table)
}
