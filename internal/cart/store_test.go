package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FyliaCare/WarehousePOS-sub000/internal/catalog"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/session"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
)

type stubCatalog struct {
	products map[uuid.UUID]catalog.ProductSnapshot
	calls    int
}

func (s *stubCatalog) FindProduct(_ context.Context, _ uuid.UUID, productID uuid.UUID) (*catalog.ProductSnapshot, error) {
	s.calls++
	product, ok := s.products[productID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &product, nil
}

func testSession() session.Session {
	return session.Session{
		StoreID:        uuid.New(),
		CashierID:      uuid.New(),
		TerminalID:     "register-1",
		Currency:       enums.CurrencyUSD,
		TaxRatePercent: decimal.NewFromInt(5),
	}
}

func newTestStore(t *testing.T, products ...catalog.ProductSnapshot) (*Store, *stubCatalog) {
	t.Helper()

	lookup := &stubCatalog{products: map[uuid.UUID]catalog.ProductSnapshot{}}
	for _, p := range products {
		lookup.products[p.ProductID] = p
	}

	store, err := NewStore(testSession(), lookup)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, lookup
}

func product(name string, price string, tracked bool) catalog.ProductSnapshot {
	return catalog.ProductSnapshot{
		ProductID:      uuid.New(),
		Name:           name,
		UnitPrice:      decimal.RequireFromString(price),
		Currency:       enums.CurrencyUSD,
		TrackInventory: tracked,
	}
}

func TestAddItemSnapshotsPriceAndMerges(t *testing.T) {
	t.Parallel()

	beans := product("Espresso Beans", "10.00", true)
	store, lookup := newTestStore(t, beans)

	ctx := context.Background()
	cart, err := store.AddItem(ctx, beans.ProductID, nil, 2)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 2 {
		t.Fatalf("unexpected lines: %+v", cart.Lines)
	}

	// Same product, no discount: merges rather than appending.
	cart, err = store.AddItem(ctx, beans.ProductID, nil, 1)
	if err != nil {
		t.Fatalf("add item again: %v", err)
	}
	if len(cart.Lines) != 1 || cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected merged line with qty 3, got %+v", cart.Lines)
	}
	if lookup.calls != 2 {
		t.Fatalf("catalog calls = %d, want 2", lookup.calls)
	}
	if cart.Totals.Subtotal.String() != "30" {
		t.Fatalf("subtotal = %s, want 30", cart.Totals.Subtotal)
	}
}

func TestAddItemDoesNotMergeDiscountedLine(t *testing.T) {
	t.Parallel()

	beans := product("Espresso Beans", "10.00", false)
	store, _ := newTestStore(t, beans)
	ctx := context.Background()

	cart, err := store.AddItem(ctx, beans.ProductID, nil, 1)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := store.SetItemDiscount(cart.Lines[0].ID, decimal.RequireFromString("1.00")); err != nil {
		t.Fatalf("set discount: %v", err)
	}

	cart, err = store.AddItem(ctx, beans.ProductID, nil, 1)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("expected separate line for discounted product, got %d lines", len(cart.Lines))
	}
}

func TestAddItemVariantsStaySeparate(t *testing.T) {
	t.Parallel()

	shirt := product("Staff Shirt", "15.00", false)
	store, _ := newTestStore(t, shirt)
	ctx := context.Background()

	small := uuid.New()
	large := uuid.New()

	if _, err := store.AddItem(ctx, shirt.ProductID, &small, 1); err != nil {
		t.Fatalf("add small: %v", err)
	}
	cart, err := store.AddItem(ctx, shirt.ProductID, &large, 1)
	if err != nil {
		t.Fatalf("add large: %v", err)
	}
	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines for distinct variants, got %d", len(cart.Lines))
	}

	cart, err = store.AddItem(ctx, shirt.ProductID, &small, 2)
	if err != nil {
		t.Fatalf("add small again: %v", err)
	}
	if len(cart.Lines) != 2 || cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected small variant merged to qty 3, got %+v", cart.Lines)
	}
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	t.Parallel()

	beans := product("Espresso Beans", "10.00", false)
	store, lookup := newTestStore(t, beans)

	for _, qty := range []int{0, -1} {
		if _, err := store.AddItem(context.Background(), beans.ProductID, nil, qty); err == nil {
			t.Fatalf("expected error for quantity %d", qty)
		}
	}
	if lookup.calls != 0 {
		t.Fatal("catalog should not be consulted for invalid quantity")
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	beans := product("Espresso Beans", "10.00", false)
	store, _ := newTestStore(t, beans)
	ctx := context.Background()

	cart, err := store.AddItem(ctx, beans.ProductID, nil, 2)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}

	cart, err = store.UpdateQuantity(cart.Lines[0].ID, 0)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if !cart.IsEmpty() {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
	if !cart.Totals.GrandTotal.IsZero() {
		t.Fatalf("grand total = %s, want 0", cart.Totals.GrandTotal)
	}
}

func TestSetItemDiscountRejectsExcessAndKeepsLine(t *testing.T) {
	t.Parallel()

	beans := product("Espresso Beans", "10.00", false)
	store, _ := newTestStore(t, beans)
	ctx := context.Background()

	cart, err := store.AddItem(ctx, beans.ProductID, nil, 1)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	lineID := cart.Lines[0].ID

	_, err = store.SetItemDiscount(lineID, decimal.RequireFromString("10.01"))
	if err == nil {
		t.Fatal("expected discount above line value to be rejected")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("code = %s, want %s", pkgerrors.As(err).Code(), pkgerrors.CodeValidation)
	}

	snapshot := store.Snapshot()
	if !snapshot.Lines[0].Discount.IsZero() {
		t.Fatalf("line discount mutated to %s", snapshot.Lines[0].Discount)
	}
}

func TestSetDiscountPercentageBounds(t *testing.T) {
	t.Parallel()

	beans := product("Espresso Beans", "10.00", false)
	store, _ := newTestStore(t, beans)
	ctx := context.Background()

	if _, err := store.AddItem(ctx, beans.ProductID, nil, 1); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if _, err := store.SetDiscount(decimal.NewFromInt(150), enums.DiscountKindPercentage); err == nil {
		t.Fatal("expected 150% discount to be rejected")
	}

	cart, err := store.SetDiscount(decimal.NewFromInt(100), enums.DiscountKindPercentage)
	if err != nil {
		t.Fatalf("set 100%% discount: %v", err)
	}
	// Subtotal fully discounted; tax applies to a zero taxable base.
	if !cart.Totals.GrandTotal.IsZero() {
		t.Fatalf("grand total = %s, want 0", cart.Totals.GrandTotal)
	}
}

func TestSubtotalNeverDrifts(t *testing.T) {
	t.Parallel()

	beans := product("Espresso Beans", "1.99", false)
	store, _ := newTestStore(t, beans)
	ctx := context.Background()

	var lineID uuid.UUID
	for i := 0; i < 50; i++ {
		cart, err := store.AddItem(ctx, beans.ProductID, nil, 1)
		if err != nil {
			t.Fatalf("add item: %v", err)
		}
		lineID = cart.Lines[0].ID
	}
	for qty := 50; qty > 1; qty-- {
		if _, err := store.UpdateQuantity(lineID, qty-1); err != nil {
			t.Fatalf("update quantity: %v", err)
		}
	}

	cart := store.Snapshot()
	if cart.Totals.Subtotal.String() != "1.99" {
		t.Fatalf("subtotal = %s, want 1.99 after churn", cart.Totals.Subtotal)
	}
}

func TestWorkedExampleTotals(t *testing.T) {
	t.Parallel()

	first := product("Item A", "10.00", false)
	second := product("Item B", "5.00", false)
	store, _ := newTestStore(t, first, second)
	ctx := context.Background()

	if _, err := store.AddItem(ctx, first.ProductID, nil, 3); err != nil {
		t.Fatalf("add first: %v", err)
	}
	cart, err := store.AddItem(ctx, second.ProductID, nil, 2)
	if err != nil {
		t.Fatalf("add second: %v", err)
	}
	if _, err := store.SetItemDiscount(cart.Lines[1].ID, decimal.RequireFromString("1.00")); err != nil {
		t.Fatalf("set item discount: %v", err)
	}
	cart, err = store.SetDiscount(decimal.NewFromInt(10), enums.DiscountKindPercentage)
	if err != nil {
		t.Fatalf("set order discount: %v", err)
	}

	if cart.Totals.Subtotal.String() != "39" {
		t.Fatalf("subtotal = %s, want 39", cart.Totals.Subtotal)
	}
	if cart.Totals.OrderDiscountAmount.String() != "3.9" {
		t.Fatalf("order discount = %s, want 3.9", cart.Totals.OrderDiscountAmount)
	}
	if cart.Totals.Tax.String() != "1.76" {
		t.Fatalf("tax = %s, want 1.76", cart.Totals.Tax)
	}
	if cart.Totals.GrandTotal.String() != "36.86" {
		t.Fatalf("grand total = %s, want 36.86", cart.Totals.GrandTotal)
	}
}

func TestClearResetsEverything(t *testing.T) {
	t.Parallel()

	beans := product("Espresso Beans", "10.00", false)
	store, _ := newTestStore(t, beans)
	ctx := context.Background()

	customer := uuid.New()
	if _, err := store.AddItem(ctx, beans.ProductID, nil, 1); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := store.SetCustomer(&customer); err != nil {
		t.Fatalf("set customer: %v", err)
	}
	if _, err := store.SetNotes("gift wrap"); err != nil {
		t.Fatalf("set notes: %v", err)
	}

	cart := store.Clear()
	if !cart.IsEmpty() || cart.CustomerID != nil || cart.Notes != "" {
		t.Fatalf("clear left state behind: %+v", cart)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	t.Parallel()

	beans := product("Espresso Beans", "10.00", false)
	store, _ := newTestStore(t, beans)

	if _, err := store.AddItem(context.Background(), beans.ProductID, nil, 1); err != nil {
		t.Fatalf("add item: %v", err)
	}

	snapshot := store.Snapshot()
	snapshot.Lines[0].Quantity = 99

	if store.Snapshot().Lines[0].Quantity != 1 {
		t.Fatal("mutating a snapshot leaked into the store")
	}
}
