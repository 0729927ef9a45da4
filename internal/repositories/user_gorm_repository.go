package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAdminRepository is a GORM implementation of AdminRepository.
// Admin accounts are server-side only and never go through row-level security.
type GORMAdminRepository struct {
	db *gorm.DB
}

// NewGORMAdminRepository creates a new instance of GORMAdminRepository.
func NewGORMAdminRepository(db *gorm.DB) *GORMAdminRepository {
	return &GORMAdminRepository{
		db: db,
	}
}

// Create creates a new admin account in the database.
func (r *GORMAdminRepository) Create(ctx context.Context, admin *models.AdminUser) error {
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	admin.Email = strings.ToLower(admin.Email)
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", ClassifyError(err))
	}
	return nil
}

// GetByEmail retrieves an admin account by email.
func (r *GORMAdminRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return r.first(ctx, "email = ?", strings.ToLower(email), "email "+email)
}

// GetByID retrieves an admin account by ID.
func (r *GORMAdminRepository) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	return r.first(ctx, "id = ?", id, "ID "+id)
}

func (r *GORMAdminRepository) first(ctx context.Context, query string, arg any, label string) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("admin with %s %w", label, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get admin by %s: %w", label, ClassifyError(err))
	}
	return &admin, nil
}
