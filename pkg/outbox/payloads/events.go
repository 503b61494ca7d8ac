package payloads

import (
	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
)

// SaleRecordedEvent signals that a checkout committed a sale and its
// inventory adjustments in one transaction.
type SaleRecordedEvent struct {
	SaleID        uuid.UUID           `json:"sale_id"`
	StoreID       uuid.UUID           `json:"store_id"`
	CashierID     uuid.UUID           `json:"cashier_id"`
	SaleNumber    int64               `json:"sale_number"`
	TotalCents    int64               `json:"total_cents"`
	Currency      enums.Currency      `json:"currency"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	ItemCount     int                 `json:"item_count"`
}

// StockDepletedEvent reports that a tracked product hit zero on-hand during
// checkout, so replenishment tooling can react.
type StockDepletedEvent struct {
	ProductID uuid.UUID `json:"product_id"`
	StoreID   uuid.UUID `json:"store_id"`
	SaleID    uuid.UUID `json:"sale_id"`
}
