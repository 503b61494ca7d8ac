package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the authoritative stock collaborator. Decrement and Restock run
// inside the caller's transaction so checkout can roll the whole commit back.
type Store interface {
	// Decrement atomically subtracts qty from the available count and returns
	// the remaining quantity. It fails with a conflict when not enough stock
	// is available and never drives the count negative.
	Decrement(ctx context.Context, tx *gorm.DB, productID, storeID uuid.UUID, qty int) (remaining int, err error)
	// Restock atomically adds qty back, e.g. when a committed sale is voided.
	Restock(ctx context.Context, tx *gorm.DB, productID, storeID uuid.UUID, qty int) error
	// Available reads the current on-hand count.
	Available(ctx context.Context, productID, storeID uuid.UUID) (int, error)
}
