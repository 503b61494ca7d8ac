package money

import (
	"github.com/shopspring/decimal"

	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// LineInput is the slice of a cart line the calculator needs.
type LineInput struct {
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// OrderDiscount describes the whole-order discount applied after per-item
// discounts. Value is a literal amount for fixed kinds and a percentage in
// [0,100] for percentage kinds.
type OrderDiscount struct {
	Kind  enums.DiscountKind
	Value decimal.Decimal
}

// Totals is the derived monetary breakdown of an order.
type Totals struct {
	Subtotal            decimal.Decimal
	ItemDiscountTotal   decimal.Decimal
	OrderDiscountAmount decimal.Decimal
	TotalDiscount       decimal.Decimal
	Tax                 decimal.Decimal
	GrandTotal          decimal.Decimal
}

// ZeroTotals returns an all-zero breakdown for an empty cart.
func ZeroTotals() Totals {
	zero := decimal.Zero
	return Totals{
		Subtotal:            zero,
		ItemDiscountTotal:   zero,
		OrderDiscountAmount: zero,
		TotalDiscount:       zero,
		Tax:                 zero,
		GrandTotal:          zero,
	}
}

// LineTotal computes quantity * unitPrice - discount, rounded to the minor
// unit. A discount exceeding the undiscounted line value is rejected rather
// than clamped so the caller can surface a validation message.
func LineTotal(quantity int, unitPrice, discount decimal.Decimal) (decimal.Decimal, error) {
	if quantity < 1 {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "unit price cannot be negative")
	}
	if discount.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "item discount cannot be negative")
	}

	gross := RoundMinor(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
	if discount.GreaterThan(gross) {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "item discount exceeds line value")
	}
	return gross.Sub(discount), nil
}

// ValidateOrderDiscount rejects descriptors that can never be applied:
// negative values and percentages outside [0,100].
func ValidateOrderDiscount(discount OrderDiscount) error {
	if !discount.Kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid discount kind")
	}
	if discount.Value.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}
	if discount.Kind == enums.DiscountKindPercentage && discount.Value.GreaterThan(oneHundred) {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount percentage must be between 0 and 100")
	}
	return nil
}

// Compute derives the full breakdown from line items, an order-level discount
// and a tax rate expressed as a percentage. Totals are always recomputed from
// the lines, never accumulated incrementally.
func Compute(lines []LineInput, discount OrderDiscount, taxRatePercent decimal.Decimal) (Totals, error) {
	if taxRatePercent.IsNegative() {
		return Totals{}, pkgerrors.New(pkgerrors.CodeValidation, "tax rate cannot be negative")
	}
	if err := ValidateOrderDiscount(discount); err != nil {
		return Totals{}, err
	}

	subtotal := decimal.Zero
	itemDiscounts := decimal.Zero
	for _, line := range lines {
		total, err := LineTotal(line.Quantity, line.UnitPrice, line.Discount)
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(total)
		itemDiscounts = itemDiscounts.Add(line.Discount)
	}

	orderDiscount := orderDiscountAmount(discount, subtotal)
	taxable := subtotal.Sub(orderDiscount)
	tax := RoundMinor(taxable.Mul(taxRatePercent).Div(oneHundred))
	grand := RoundMinor(taxable.Add(tax))

	return Totals{
		Subtotal:            RoundMinor(subtotal),
		ItemDiscountTotal:   RoundMinor(itemDiscounts),
		OrderDiscountAmount: orderDiscount,
		TotalDiscount:       RoundMinor(itemDiscounts.Add(orderDiscount)),
		Tax:                 tax,
		GrandTotal:          grand,
	}, nil
}

// orderDiscountAmount resolves the descriptor against the subtotal. Fixed
// amounts are clamped into [0, subtotal]; percentages were validated upstream.
func orderDiscountAmount(discount OrderDiscount, subtotal decimal.Decimal) decimal.Decimal {
	switch discount.Kind {
	case enums.DiscountKindPercentage:
		return RoundMinor(subtotal.Mul(discount.Value).Div(oneHundred))
	case enums.DiscountKindFixed:
		if discount.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return RoundMinor(discount.Value)
	default:
		return decimal.Zero
	}
}
