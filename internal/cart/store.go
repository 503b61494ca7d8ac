package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FyliaCare/WarehousePOS-sub000/internal/catalog"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/session"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/money"
)

// Store owns the mutable cart for one terminal session. It is constructed per
// session, never shared across terminals, and every mutation recomputes the
// derived totals from the lines before returning. Mutations are all-or-nothing:
// a rejected input leaves the cart exactly as it was.
type Store struct {
	mu      sync.Mutex
	session session.Session
	catalog catalog.Lookup
	cart    Cart
}

// NewStore builds a cart store bound to a terminal session and catalog.
func NewStore(sess session.Session, lookup catalog.Lookup) (*Store, error) {
	if lookup == nil {
		return nil, fmt.Errorf("catalog lookup required")
	}
	return &Store{
		session: sess,
		catalog: lookup,
		cart:    newCart(),
	}, nil
}

// Session returns the terminal session this cart belongs to.
func (s *Store) Session() session.Session {
	return s.session
}

// Snapshot returns a deep copy of the current cart.
func (s *Store) Snapshot() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// AddItem resolves the product, snapshots its price and either merges into a
// matching line or appends a new one. A line only absorbs more quantity when
// product and variant match and the line carries no per-item discount.
func (s *Store) AddItem(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, quantity int) (Cart, error) {
	if quantity < 1 {
		return s.Snapshot(), pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if productID == uuid.Nil {
		return s.Snapshot(), pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.catalog.FindProduct(ctx, s.session.StoreID, productID)
	if err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.Clone()
	merged := false
	for i, line := range next.Lines {
		if line.ProductID == productID && sameVariant(line.VariantID, variantID) && line.Discount.IsZero() {
			next.Lines[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		line := Line{
			ID:             uuid.New(),
			ProductID:      product.ProductID,
			Name:           product.Name,
			UnitPrice:      product.UnitPrice,
			TrackInventory: product.TrackInventory,
			Quantity:       quantity,
			Discount:       decimal.Zero,
		}
		if variantID != nil {
			variant := *variantID
			line.VariantID = &variant
		}
		next.Lines = append(next.Lines, line)
	}

	return s.commit(next)
}

// UpdateQuantity sets a line's quantity. Driving the quantity to zero or
// below removes the line. Available stock is not checked here; shortfalls
// surface at checkout when the decrement runs.
func (s *Store) UpdateQuantity(lineID uuid.UUID, quantity int) (Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(lineID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.Clone()
	idx := findLine(next.Lines, lineID)
	if idx < 0 {
		return s.cart.Clone(), pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
	}
	next.Lines[idx].Quantity = quantity

	return s.commit(next)
}

// RemoveItem deletes a line outright.
func (s *Store) RemoveItem(lineID uuid.UUID) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.Clone()
	idx := findLine(next.Lines, lineID)
	if idx < 0 {
		return s.cart.Clone(), pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
	}
	next.Lines = append(next.Lines[:idx], next.Lines[idx+1:]...)

	return s.commit(next)
}

// SetItemDiscount applies a per-item monetary discount. An amount larger than
// the line's undiscounted value is rejected and the line is left unchanged.
func (s *Store) SetItemDiscount(lineID uuid.UUID, amount decimal.Decimal) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.Clone()
	idx := findLine(next.Lines, lineID)
	if idx < 0 {
		return s.cart.Clone(), pkgerrors.New(pkgerrors.CodeNotFound, "line item not found")
	}
	next.Lines[idx].Discount = amount

	return s.commit(next)
}

// SetDiscount applies an order-level discount descriptor.
func (s *Store) SetDiscount(value decimal.Decimal, kind enums.DiscountKind) (Cart, error) {
	discount := money.OrderDiscount{Kind: kind, Value: value}
	if err := money.ValidateOrderDiscount(discount); err != nil {
		return s.Snapshot(), err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.Clone()
	next.Discount = discount

	return s.commit(next)
}

// SetCustomer attaches or detaches the customer reference.
func (s *Store) SetCustomer(customerID *uuid.UUID) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.Clone()
	if customerID == nil {
		next.CustomerID = nil
	} else {
		customer := *customerID
		next.CustomerID = &customer
	}

	return s.commit(next)
}

// SetNotes replaces the free-text order notes.
func (s *Store) SetNotes(text string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.Clone()
	next.Notes = text

	return s.commit(next)
}

// SetFulfillment switches the fulfillment mode.
func (s *Store) SetFulfillment(mode enums.FulfillmentMode) (Cart, error) {
	if !mode.IsValid() {
		return s.Snapshot(), pkgerrors.New(pkgerrors.CodeValidation, "invalid fulfillment mode")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cart.Clone()
	next.Fulfillment = mode

	return s.commit(next)
}

// Clear resets the cart to its initial state.
func (s *Store) Clear() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = newCart()
	return s.cart.Clone()
}

// Restore replaces the active cart with the given snapshot, recomputing
// totals under this session's tax rate. Used when a held sale is resumed.
func (s *Store) Restore(snapshot Cart) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(snapshot.Clone())
}

// commit recomputes derived totals on the candidate cart and installs it only
// when the computation succeeds. Callers must hold the mutex.
func (s *Store) commit(next Cart) (Cart, error) {
	lines := make([]money.LineInput, len(next.Lines))
	for i, line := range next.Lines {
		lines[i] = money.LineInput{
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
		}
	}

	totals, err := money.Compute(lines, next.Discount, s.session.TaxRatePercent)
	if err != nil {
		return s.cart.Clone(), err
	}

	for i := range next.Lines {
		total, err := money.LineTotal(next.Lines[i].Quantity, next.Lines[i].UnitPrice, next.Lines[i].Discount)
		if err != nil {
			return s.cart.Clone(), err
		}
		next.Lines[i].Total = total
	}

	next.Totals = totals
	s.cart = next
	return s.cart.Clone(), nil
}

func findLine(lines []Line, lineID uuid.UUID) int {
	for i, line := range lines {
		if line.ID == lineID {
			return i
		}
	}
	return -1
}

func sameVariant(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
