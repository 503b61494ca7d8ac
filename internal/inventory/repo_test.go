package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
)

func setupInventoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	// One connection keeps concurrent writers serialized instead of BUSY.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	items := `
CREATE TABLE IF NOT EXISTS inventory_items (
  product_id TEXT NOT NULL,
  store_id TEXT NOT NULL,
  available_qty INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME,
  PRIMARY KEY (product_id, store_id)
);`
	require.NoError(t, db.Exec(items).Error)
	return db
}

func seedStock(t *testing.T, db *gorm.DB, storeID uuid.UUID, qty int) uuid.UUID {
	t.Helper()

	productID := uuid.New()
	require.NoError(t, db.Create(&models.InventoryItem{
		ProductID:    productID,
		StoreID:      storeID,
		AvailableQty: qty,
	}).Error)
	return productID
}

func TestDecrementHappyPath(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	storeID := uuid.New()
	productID := seedStock(t, db, storeID, 5)

	remaining, err := repo.Decrement(context.Background(), db, productID, storeID, 2)
	require.NoError(t, err)
	require.Equal(t, 3, remaining)

	available, err := repo.Available(context.Background(), productID, storeID)
	require.NoError(t, err)
	require.Equal(t, 3, available)
}

func TestDecrementInsufficientStock(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	storeID := uuid.New()
	productID := seedStock(t, db, storeID, 1)

	remaining, err := repo.Decrement(context.Background(), db, productID, storeID, 2)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
	require.Equal(t, 1, remaining)

	// Failed decrement must not change the count.
	available, err := repo.Available(context.Background(), productID, storeID)
	require.NoError(t, err)
	require.Equal(t, 1, available)
}

func TestDecrementUnknownProduct(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)

	_, err := repo.Decrement(context.Background(), db, uuid.New(), uuid.New(), 1)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDecrementNeverGoesNegativeUnderContention(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	storeID := uuid.New()
	productID := seedStock(t, db, storeID, 3)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, errs[slot] = repo.Decrement(context.Background(), db, productID, storeID, 2)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	conflicts := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case pkgerrors.As(err).Code() == pkgerrors.CodeConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, succeeded, "exactly one checkout wins")
	require.Equal(t, 1, conflicts, "the other sees insufficient stock")

	available, err := repo.Available(context.Background(), productID, storeID)
	require.NoError(t, err)
	require.Equal(t, 1, available)
}

func TestRestock(t *testing.T) {
	db := setupInventoryTestDB(t)
	repo := NewRepository(db)
	storeID := uuid.New()
	productID := seedStock(t, db, storeID, 0)

	require.NoError(t, repo.Restock(context.Background(), db, productID, storeID, 4))

	available, err := repo.Available(context.Background(), productID, storeID)
	require.NoError(t, err)
	require.Equal(t, 4, available)

	err = repo.Restock(context.Background(), db, uuid.New(), storeID, 1)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
