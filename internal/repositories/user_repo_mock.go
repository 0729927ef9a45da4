package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockAdminRepository is an in-memory implementation of AdminRepository.
type MockAdminRepository struct {
	admins map[string]models.AdminUser
	mu     sync.RWMutex
}

// NewMockAdminRepository creates a new instance of MockAdminRepository.
func NewMockAdminRepository() *MockAdminRepository {
	return &MockAdminRepository{
		admins: make(map[string]models.AdminUser),
	}
}

// Create adds a new admin account. Emails are unique.
func (r *MockAdminRepository) Create(_ context.Context, admin *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin.Email = strings.ToLower(admin.Email)
	for _, existing := range r.admins {
		if existing.Email == admin.Email {
			return fmt.Errorf("failed to create admin: email %s already registered", admin.Email)
		}
	}
	if admin.ID == "" {
		admin.ID = uuid.New().String()
	}
	admin.CreatedAt = time.Now()
	r.admins[admin.ID] = *admin
	return nil
}

// GetByEmail returns the admin with the given email.
func (r *MockAdminRepository) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, admin := range r.admins {
		if admin.Email == email {
			return &admin, nil
		}
	}
	return nil, fmt.Errorf("admin with email %s %w", email, ErrNotFound)
}

// GetByID returns the admin with the given ID.
func (r *MockAdminRepository) GetByID(_ context.Context, id string) (*models.AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, fmt.Errorf("admin with ID %s %w", id, ErrNotFound)
	}
	return &admin, nil
}
