package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
)

// ProductSnapshot is the read-only slice of a catalog row a cart line copies
// at add time. The cart never re-reads the catalog for an existing line.
type ProductSnapshot struct {
	ProductID      uuid.UUID
	Name           string
	UnitPrice      decimal.Decimal
	Currency       enums.Currency
	TrackInventory bool
}

// Lookup resolves products for price snapshotting.
type Lookup interface {
	FindProduct(ctx context.Context, storeID, productID uuid.UUID) (*ProductSnapshot, error)
}
