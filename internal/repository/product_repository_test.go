package repository_test

import (
	"context"
	"testing"

	"booth-pos-backend/internal/repository"
	apperrors "booth-pos-backend/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Reserve(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProductRepository(testDB)

	t.Run("Success - decrements stock and snapshots the product", func(t *testing.T) {
		setupTestWithTruncate(t)

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		tx := beginTx(t)
		defer tx.Rollback(ctx)

		snap, err := repo.Reserve(ctx, tx, productID, eventID, 3)
		require.NoError(t, err)

		assert.Equal(t, productID, snap.ProductID)
		assert.Equal(t, "Badge", snap.Name)
		assert.Equal(t, 50.0, snap.Price)
		assert.Equal(t, 3, snap.Quantity)

		require.NoError(t, tx.Commit(ctx))
		assert.Equal(t, 7, getCurrentStock(t, productID))
	})

	t.Run("Rollback undoes the decrement", func(t *testing.T) {
		setupTestWithTruncate(t)

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 10)

		tx := beginTx(t)
		_, err := repo.Reserve(ctx, tx, productID, eventID, 3)
		require.NoError(t, err)
		require.NoError(t, tx.Rollback(ctx))

		assert.Equal(t, 10, getCurrentStock(t, productID))
	})

	t.Run("Failed - ErrInsufficientStock carries the product name", func(t *testing.T) {
		setupTestWithTruncate(t)

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 2)

		tx := beginTx(t)
		defer tx.Rollback(ctx)

		_, err := repo.Reserve(ctx, tx, productID, eventID, 3)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientStock)

		var stockErr *apperrors.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Badge", stockErr.ProductName)
	})

	t.Run("Failed - ErrProductNotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		eventID := createTestEvent(t, "Summer Con")

		tx := beginTx(t)
		defer tx.Rollback(ctx)

		_, err := repo.Reserve(ctx, tx, 9999, eventID, 1)
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})

	t.Run("Failed - product scoped to another event", func(t *testing.T) {
		setupTestWithTruncate(t)

		eventID := createTestEvent(t, "Summer Con")
		otherEventID := createTestEvent(t, "Winter Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, otherEventID, masterID, 50, 10, 10)

		tx := beginTx(t)
		defer tx.Rollback(ctx)

		_, err := repo.Reserve(ctx, tx, productID, eventID, 1)
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})
}

func TestProductRepository_RestoreStock(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProductRepository(testDB)

	t.Run("Success", func(t *testing.T) {
		setupTestWithTruncate(t)

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)
		productID := createTestProduct(t, eventID, masterID, 50, 10, 6)

		tx := beginTx(t)
		require.NoError(t, repo.RestoreStock(ctx, tx, productID, 4))
		require.NoError(t, tx.Commit(ctx))

		assert.Equal(t, 10, getCurrentStock(t, productID))
	})

	t.Run("Failed - ErrProductNotFound", func(t *testing.T) {
		setupTestWithTruncate(t)

		tx := beginTx(t)
		defer tx.Rollback(ctx)

		err := repo.RestoreStock(ctx, tx, 9999, 1)
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})
}

func TestProductRepository_ListByEvent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProductRepository(testDB)

	t.Run("Includes master product image and category", func(t *testing.T) {
		setupTestWithTruncate(t)

		eventID := createTestEvent(t, "Summer Con")
		masterID := createTestMasterProduct(t, "BADGE-01", "Badge", 50)

		_, err := testDB.Exec(ctx,
			"UPDATE master_products SET image_url = 'badge.png', category = 'goods' WHERE id = $1", masterID)
		require.NoError(t, err)

		createTestProduct(t, eventID, masterID, 50, 10, 10)

		products, err := repo.ListByEvent(ctx, eventID)
		require.NoError(t, err)
		require.Len(t, products, 1)

		require.NotNil(t, products[0].ImageURL)
		assert.Equal(t, "badge.png", *products[0].ImageURL)
		require.NotNil(t, products[0].Category)
		assert.Equal(t, "goods", *products[0].Category)
	})

	t.Run("Empty event returns empty slice", func(t *testing.T) {
		setupTestWithTruncate(t)

		eventID := createTestEvent(t, "Summer Con")

		products, err := repo.ListByEvent(ctx, eventID)
		require.NoError(t, err)
		assert.NotNil(t, products)
		assert.Len(t, products, 0)
	})
}
