package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  store_id TEXT NOT NULL,
  sku TEXT NOT NULL,
  name TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  currency TEXT NOT NULL DEFAULT 'USD',
  track_inventory INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

func newProduct(t *testing.T, db *gorm.DB, storeID uuid.UUID, name string, priceCents int64, active bool) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:             uuid.New(),
		StoreID:        storeID,
		SKU:            uuid.NewString()[:8],
		Name:           name,
		UnitPriceCents: priceCents,
		Currency:       enums.CurrencyUSD,
		TrackInventory: true,
		IsActive:       active,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestFindProductSnapshotsPrice(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	storeID := uuid.New()

	product := newProduct(t, db, storeID, "Espresso Beans 1kg", 1250, true)

	snap, err := repo.FindProduct(context.Background(), storeID, product.ID)
	require.NoError(t, err)
	require.Equal(t, product.ID, snap.ProductID)
	require.Equal(t, "Espresso Beans 1kg", snap.Name)
	require.Equal(t, "12.5", snap.UnitPrice.String())
	require.True(t, snap.TrackInventory)
}

func TestFindProductScopedToStore(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	product := newProduct(t, db, uuid.New(), "Drip Filter", 300, true)

	_, err := repo.FindProduct(context.Background(), uuid.New(), product.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestFindProductSkipsInactive(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	storeID := uuid.New()

	product := newProduct(t, db, storeID, "Retired SKU", 999, false)

	_, err := repo.FindProduct(context.Background(), storeID, product.ID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
