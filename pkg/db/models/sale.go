package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
)

// Sale is the durable ledger record produced by a successful checkout.
// Immutable after creation except for status transitions.
type Sale struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID             `gorm:"column:store_id;type:uuid;not null;uniqueIndex:ux_sales_store_idempotency,priority:1;uniqueIndex:ux_sales_store_number,priority:1"`
	CashierID       uuid.UUID             `gorm:"column:cashier_id;type:uuid;not null"`
	CustomerID      *uuid.UUID            `gorm:"column:customer_id;type:uuid"`
	SaleNumber      int64                 `gorm:"column:sale_number;not null;uniqueIndex:ux_sales_store_number,priority:2"`
	Currency        enums.Currency        `gorm:"column:currency;type:text;not null;default:'USD'"`
	SubtotalCents   int64                 `gorm:"column:subtotal_cents;not null"`
	DiscountCents   int64                 `gorm:"column:discount_cents;not null;default:0"`
	TaxCents        int64                 `gorm:"column:tax_cents;not null;default:0"`
	TotalCents      int64                 `gorm:"column:total_cents;not null"`
	ItemCount       int                   `gorm:"column:item_count;not null"`
	PaymentMethod   enums.PaymentMethod   `gorm:"column:payment_method;type:text;not null"`
	PaymentStatus   enums.PaymentStatus   `gorm:"column:payment_status;type:text;not null;default:'paid'"`
	FulfillmentMode enums.FulfillmentMode `gorm:"column:fulfillment_mode;type:text;not null;default:'pickup'"`
	Status          enums.SaleStatus      `gorm:"column:status;type:text;not null;default:'completed'"`
	Notes           *string               `gorm:"column:notes"`
	IdempotencyKey  string                `gorm:"column:idempotency_key;not null;uniqueIndex:ux_sales_store_idempotency,priority:2"`
	Items           []SaleItem            `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}
