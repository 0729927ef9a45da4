package repositories_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProductRepository_AnonymousWritesAreRejected(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, repositories.Credential{}, sampleInput())
	assert.ErrorIs(t, err, repositories.ErrPermissionDenied)

	created, err := repo.Create(ctx, admin, sampleInput())
	require.NoError(t, err)

	name := "Renamed"
	_, err = repo.Update(ctx, repositories.Credential{}, created.ID, models.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, repositories.ErrPermissionDenied)
	assert.ErrorIs(t, repo.Delete(ctx, repositories.Credential{}, created.ID), repositories.ErrPermissionDenied)

	products, err := repo.GetAll(ctx, repositories.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Leather Belt", products[0].Name)
}

func TestMockProductRepository_OrderingFollowsCreatedAt(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	ctx := context.Background()
	stamps := []time.Time{
		time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
	}

	var ids []string
	for _, ts := range stamps {
		ts := ts
		repo.SetClock(func() time.Time { return ts })
		p, err := repo.Create(ctx, admin, sampleInput())
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	products, err := repo.GetAll(ctx, repositories.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{ids[0], ids[2], ids[1]}, []string{products[0].ID, products[1].ID, products[2].ID})
}

func TestMockProductRepository_UpdateAndDelete(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, admin, sampleInput())
	require.NoError(t, err)

	price := "19.99"
	updated, err := repo.Update(ctx, admin, created.ID, models.ProductPatch{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "19.99", updated.Price)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	_, err = repo.Update(ctx, admin, "missing", models.ProductPatch{Price: &price})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, admin, created.ID))
	require.NoError(t, repo.Delete(ctx, admin, created.ID))
	product, err := repo.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Nil(t, product)
}

func TestMockMessageRepository_Policy(t *testing.T) {
	repo := repositories.NewMockMessageRepository()
	ctx := context.Background()

	msg, err := repo.Create(ctx, models.MessageInput{CustomerName: "Ada", Email: "ada@example.com", Message: "Hi"})
	require.NoError(t, err)

	_, err = repo.GetAll(ctx, repositories.Credential{})
	assert.ErrorIs(t, err, repositories.ErrPermissionDenied)
	assert.ErrorIs(t, repo.Delete(ctx, repositories.Credential{}, msg.ID), repositories.ErrPermissionDenied)

	messages, err := repo.GetAll(ctx, admin)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, msg.ID, messages[0].ID)
}
