package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem tracks the authoritative on-hand count per product and store.
type InventoryItem struct {
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;primaryKey"`
	StoreID      uuid.UUID `gorm:"column:store_id;type:uuid;primaryKey"`
	AvailableQty int       `gorm:"column:available_qty;not null;default:0"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
