package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/money"
)

// Line is one product/variant entry in the order in progress. The line id is
// distinct from the product id so the same product can appear twice, e.g.
// once discounted and once at full price. UnitPrice is snapshotted at add
// time and never re-read from the catalog.
type Line struct {
	ID             uuid.UUID
	ProductID      uuid.UUID
	VariantID      *uuid.UUID
	Name           string
	UnitPrice      decimal.Decimal
	TrackInventory bool
	Quantity       int
	Discount       decimal.Decimal
	Total          decimal.Decimal
}

// Cart is the order-in-progress aggregate. Lines keep insertion order, which
// doubles as the receipt order. Totals are always derived from the lines.
type Cart struct {
	Lines       []Line
	CustomerID  *uuid.UUID
	Notes       string
	Discount    money.OrderDiscount
	Fulfillment enums.FulfillmentMode
	Totals      money.Totals
}

// IsEmpty reports whether the cart holds no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount returns the total unit count across all lines.
func (c Cart) ItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Clone returns a deep copy. Decimals are immutable values, so only the line
// slice and the pointer fields need duplicating.
func (c Cart) Clone() Cart {
	out := c
	out.Lines = make([]Line, len(c.Lines))
	for i, line := range c.Lines {
		out.Lines[i] = line
		if line.VariantID != nil {
			variant := *line.VariantID
			out.Lines[i].VariantID = &variant
		}
	}
	if c.CustomerID != nil {
		customer := *c.CustomerID
		out.CustomerID = &customer
	}
	return out
}

func newCart() Cart {
	return Cart{
		Lines:       []Line{},
		Discount:    money.OrderDiscount{Kind: enums.DiscountKindFixed, Value: decimal.Zero},
		Fulfillment: enums.FulfillmentModePickup,
		Totals:      money.ZeroTotals(),
	}
}
