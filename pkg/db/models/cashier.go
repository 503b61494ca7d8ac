package models

import (
	"time"

	"github.com/google/uuid"
)

// Cashier is a terminal operator who signs in with a PIN.
type Cashier struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   uuid.UUID `gorm:"column:store_id;type:uuid;not null"`
	Name      string    `gorm:"column:name;not null"`
	PINHash   string    `gorm:"column:pin_hash;not null"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
