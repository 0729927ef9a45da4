package repositories_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var admin = repositories.Credential{Token: "token", Subject: "admin-1", Email: "admin@example.com", Role: "authenticated"}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&repositories.ProductRow{}, &repositories.MessageRow{}, &models.AdminUser{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func sampleInput() models.ProductInput {
	return models.ProductInput{
		Name:        "Leather Belt",
		Description: "Full grain leather belt",
		Price:       "25.00",
		ImageURL:    "https://cdn.example.com/belt.jpg",
		Images:      []string{"https://cdn.example.com/belt.jpg", "https://cdn.example.com/belt-2.jpg"},
		Category:    models.CategoryAccessories,
		IsFeatured:  true,
	}
}

func TestGORMProductRepository_CreateThenGet(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t), false)
	ctx := context.Background()
	input := sampleInput()

	created, err := repo.Create(ctx, admin, input)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, input.Name, fetched.Name)
	assert.Equal(t, input.Description, fetched.Description)
	assert.Equal(t, input.Price, fetched.Price)
	assert.Equal(t, input.ImageURL, fetched.ImageURL)
	assert.Equal(t, input.Images, fetched.Images)
	assert.Equal(t, input.Category, fetched.Category)
	assert.Equal(t, input.IsFeatured, fetched.IsFeatured)
	assert.WithinDuration(t, created.CreatedAt, fetched.CreatedAt, time.Second)
}

func TestGORMProductRepository_GetMissingIsNotAnError(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t), false)

	product, err := repo.GetByID(context.Background(), "does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, product)
}

func TestGORMProductRepository_UpdateOnlyTouchesGivenFields(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t), false)
	ctx := context.Background()

	created, err := repo.Create(ctx, admin, sampleInput())
	require.NoError(t, err)

	price := "19.99"
	updated, err := repo.Update(ctx, admin, created.ID, models.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "19.99", updated.Price)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "19.99", fetched.Price)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Description, fetched.Description)
	assert.Equal(t, created.ImageURL, fetched.ImageURL)
	assert.Equal(t, created.Images, fetched.Images)
	assert.Equal(t, created.Category, fetched.Category)
	assert.Equal(t, created.IsFeatured, fetched.IsFeatured)
}

func TestGORMProductRepository_UpdateMissing(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t), false)

	name := "Ghost"
	_, err := repo.Update(context.Background(), admin, "missing", models.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProductRepository_DeleteIsIdempotent(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t), false)
	ctx := context.Background()

	created, err := repo.Create(ctx, admin, sampleInput())
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, admin, created.ID))
	require.NoError(t, repo.Delete(ctx, admin, created.ID))

	product, err := repo.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Nil(t, product)
}

func TestGORMProductRepository_GetAllNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMProductRepository(db, false)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// Inserted out of order on purpose.
	for i, offset := range []int{2, 0, 3, 1} {
		row := repositories.ProductRow{
			ID:          []string{"c", "a", "d", "b"}[i],
			Name:        "Item",
			Description: "Item",
			Price:       "1.00",
			ImageURL:    "https://cdn.example.com/i.jpg",
			Category:    models.CategoryFootwear,
			IsFeatured:  offset%2 == 0,
			CreatedAt:   base.Add(time.Duration(offset) * time.Hour),
		}
		require.NoError(t, db.Create(&row).Error)
	}

	products, err := repo.GetAll(context.Background(), repositories.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 4)
	ids := []string{products[0].ID, products[1].ID, products[2].ID, products[3].ID}
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids)

	featured, err := repo.GetAll(context.Background(), repositories.ProductFilter{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, featured, 2)
	assert.Equal(t, "c", featured[0].ID)
	assert.Equal(t, "a", featured[1].ID)
}

func TestGORMProductRepository_GetAllEmpty(t *testing.T) {
	repo := repositories.NewGORMProductRepository(openTestDB(t), false)

	products, err := repo.GetAll(context.Background(), repositories.ProductFilter{})
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestGORMProductRepository_MissingTableIsStoreUnavailable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo := repositories.NewGORMProductRepository(db, false)

	_, err = repo.GetAll(context.Background(), repositories.ProductFilter{})
	assert.ErrorIs(t, err, repositories.ErrStoreUnavailable)
}

func TestGORMMessageRepository_Lifecycle(t *testing.T) {
	repo := repositories.NewGORMMessageRepository(openTestDB(t), false)
	ctx := context.Background()

	first, err := repo.Create(ctx, models.MessageInput{CustomerName: "Ada", Email: "ada@example.com", Message: "Hello"})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	time.Sleep(5 * time.Millisecond)
	second, err := repo.Create(ctx, models.MessageInput{CustomerName: "Bola", Email: "bola@example.com", Message: "Hi"})
	require.NoError(t, err)

	messages, err := repo.GetAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, second.ID, messages[0].ID)
	assert.Equal(t, first.ID, messages[1].ID)

	require.NoError(t, repo.Delete(ctx, admin, first.ID))
	messages, err = repo.GetAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "Bola", messages[0].CustomerName)
}

func TestGORMAdminRepository(t *testing.T) {
	repo := repositories.NewGORMAdminRepository(openTestDB(t))
	ctx := context.Background()

	account := &models.AdminUser{Email: "Owner@Example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, account))
	assert.NotEmpty(t, account.ID)

	byEmail, err := repo.GetByEmail(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)

	byID, err := repo.GetByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", byID.Email)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.Error(t, repo.Create(ctx, &models.AdminUser{Email: "owner@example.com", PasswordHash: "x"}))
}
