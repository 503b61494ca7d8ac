package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
)

// Product is the catalog entry a cart line snapshots its price from.
type Product struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID        uuid.UUID      `gorm:"column:store_id;type:uuid;not null"`
	SKU            string         `gorm:"column:sku;not null"`
	Name           string         `gorm:"column:name;not null"`
	UnitPriceCents int64          `gorm:"column:unit_price_cents;not null"`
	Currency       enums.Currency `gorm:"column:currency;type:text;not null;default:'USD'"`
	TrackInventory bool           `gorm:"column:track_inventory;not null;default:false"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
