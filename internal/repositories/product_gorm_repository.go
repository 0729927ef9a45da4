package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	store scopedDB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
// rowLevelSecurity must only be enabled on PostgreSQL.
func NewGORMProductRepository(db *gorm.DB, rowLevelSecurity bool) *GORMProductRepository {
	return &GORMProductRepository{
		store: scopedDB{db: db, rowLevelSecurity: rowLevelSecurity},
	}
}

// GetAll retrieves products, newest first.
func (r *GORMProductRepository) GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	var rows []ProductRow
	err := r.store.run(ctx, Credential{}, func(tx *gorm.DB) error {
		q := tx.Order(mustColumn(ProductFields, "createdAt") + " DESC")
		if filter.FeaturedOnly {
			q = q.Where(mustColumn(ProductFields, "isFeatured")+" = ?", true)
		}
		if filter.Category != "" {
			q = q.Where(mustColumn(ProductFields, "category")+" = ?", filter.Category)
		}
		return q.Find(&rows).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", ClassifyError(err))
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, ProductFromRow(row))
	}
	return products, nil
}

// GetByID retrieves a single product. A missing product yields (nil, nil).
func (r *GORMProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var row ProductRow
	err := r.store.run(ctx, Credential{}, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Take(&row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, ClassifyError(err))
	}
	product := ProductFromRow(row)
	return &product, nil
}

// Create inserts a new product and returns it with its id and creation time.
func (r *GORMProductRepository) Create(ctx context.Context, cred Credential, input models.ProductInput) (*models.Product, error) {
	row := ProductToRow(productFromInput(input))
	// Assigned here rather than by the column default so no RETURNING read-back is needed.
	row.ID = uuid.New().String()

	err := r.store.run(ctx, cred, func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", ClassifyError(err))
	}
	product := ProductFromRow(row)
	return &product, nil
}

// Update writes only the fields set in patch and returns the stored product.
func (r *GORMProductRepository) Update(ctx context.Context, cred Credential, id string, patch models.ProductPatch) (*models.Product, error) {
	var row ProductRow
	err := r.store.run(ctx, cred, func(tx *gorm.DB) error {
		if cols := ProductPatchColumns(patch); len(cols) > 0 {
			res := tx.Model(&ProductRow{}).Where("id = ?", id).Updates(cols)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("product with ID %s %w", id, ErrNotFound)
			}
		}
		if err := tx.Where("id = ?", id).Take(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product with ID %s %w", id, ErrNotFound)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", ClassifyError(err))
	}
	product := ProductFromRow(row)
	return &product, nil
}

// Delete removes a product. Deleting a missing product is not an error.
func (r *GORMProductRepository) Delete(ctx context.Context, cred Credential, id string) error {
	err := r.store.run(ctx, cred, func(tx *gorm.DB) error {
		return tx.Where("id = ?", id).Delete(&ProductRow{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", ClassifyError(err))
	}
	return nil
}
