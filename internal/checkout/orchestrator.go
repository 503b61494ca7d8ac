package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/FyliaCare/WarehousePOS-sub000/internal/cart"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/inventory"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/sales"
	dbpkg "github.com/FyliaCare/WarehousePOS-sub000/pkg/db"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/db/models"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/enums"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/metrics"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/money"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/outbox"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/outbox/payloads"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// saleNumberAttempts bounds how often a commit re-runs after losing the
// sale-number allocation race to a concurrent checkout at the same store.
const saleNumberAttempts = 3

var errSaleNumberTaken = errors.New("sale number already taken")

// Input is what the cashier supplies at the moment of checkout. The
// idempotency key is generated client-side so a retried submission after a
// transient failure can be recognized.
type Input struct {
	PaymentMethod  enums.PaymentMethod
	IdempotencyKey string
}

// Result reports the committed sale. AlreadyCommitted is true when the
// idempotency key matched an earlier commit and no new sale was written.
type Result struct {
	Sale             *models.Sale
	AlreadyCommitted bool
}

// Orchestrator turns the active cart into a durable sale. It owns the
// Idle -> Submitting -> Committed/Failed state machine for one terminal; a
// second checkout while one is in flight is rejected, not queued. The whole
// commit (sale header, items, stock decrements, outbox event) runs in one
// database transaction, so a failed decrement rolls everything back.
type Orchestrator struct {
	mu    sync.Mutex
	state enums.CheckoutState

	cartStore *cart.Store
	ledger    sales.Repository
	stock     inventory.Store
	tx        txRunner
	events    outboxPublisher
	metrics   *metrics.CheckoutMetrics
	logg      *logger.Logger
	timeout   time.Duration
}

// NewOrchestrator builds a checkout orchestrator for one terminal session.
func NewOrchestrator(
	cartStore *cart.Store,
	ledger sales.Repository,
	stock inventory.Store,
	tx txRunner,
	events outboxPublisher,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
	timeout time.Duration,
) (*Orchestrator, error) {
	if cartStore == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if events == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Orchestrator{
		state:     enums.CheckoutStateIdle,
		cartStore: cartStore,
		ledger:    ledger,
		stock:     stock,
		tx:        tx,
		events:    events,
		metrics:   checkoutMetrics,
		logg:      logg,
		timeout:   timeout,
	}, nil
}

// State returns the current checkout state.
func (o *Orchestrator) State() enums.CheckoutState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Checkout validates preconditions, then commits the cart in one transaction.
// On success the cart is cleared and the sale returned; on failure the cart
// is left untouched so the cashier can adjust and retry.
func (o *Orchestrator) Checkout(ctx context.Context, input Input) (*Result, error) {
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if input.IdempotencyKey == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "idempotency key required")
	}

	snapshot := o.cartStore.Snapshot()
	if snapshot.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if err := o.begin(); err != nil {
		return nil, err
	}

	started := time.Now()
	result, err := o.commit(ctx, snapshot, input)
	if err != nil {
		o.finish(enums.CheckoutStateFailed)
		o.recordFailure(err, started)
		return nil, err
	}

	o.cartStore.Clear()
	o.finish(enums.CheckoutStateCommitted)
	o.recordSuccess(input, started)

	if o.logg != nil {
		logCtx := o.logg.WithSaleID(ctx, result.Sale.ID.String())
		o.logg.Info(logCtx, "checkout committed")
	}
	return result, nil
}

// begin moves Idle/Committed/Failed to Submitting. A checkout already in
// flight is a state conflict for the caller, checked and set atomically
// before any I/O happens.
func (o *Orchestrator) begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == enums.CheckoutStateSubmitting {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already in progress")
	}
	o.state = enums.CheckoutStateSubmitting
	return nil
}

func (o *Orchestrator) finish(state enums.CheckoutState) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}

func (o *Orchestrator) commit(ctx context.Context, snapshot cart.Cart, input Input) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	sess := o.cartStore.Session()

	// A retry after a transient failure may have committed already.
	if existing, err := o.ledger.FindByIdempotencyKey(ctx, sess.StoreID, input.IdempotencyKey); err != nil {
		return nil, err
	} else if existing != nil {
		return &Result{Sale: existing, AlreadyCommitted: true}, nil
	}

	for attempt := 1; ; attempt++ {
		sale := o.buildSale(snapshot, input)

		err := o.tx.WithTx(ctx, func(tx *gorm.DB) error {
			ledger := o.ledger.WithTx(tx)

			number, err := ledger.NextSaleNumber(ctx, sess.StoreID)
			if err != nil {
				return err
			}
			sale.SaleNumber = number

			if _, err := ledger.CreateSale(ctx, sale); err != nil {
				if dbpkg.IsUniqueViolation(err, "ux_sales_store_idempotency", "sales.idempotency_key") {
					return pkgerrors.Wrap(pkgerrors.CodeIdempotency, err, "idempotency key already used")
				}
				if dbpkg.IsUniqueViolation(err, "ux_sales_store_number", "sales.sale_number") {
					return errSaleNumberTaken
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist sale")
			}

			items := buildSaleItems(sale.ID, snapshot)
			if err := ledger.CreateItems(ctx, items); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist sale items")
			}

			depleted, err := o.decrementStock(ctx, tx, sess.StoreID, snapshot)
			if err != nil {
				return err
			}

			event := outbox.DomainEvent{
				EventType:     enums.EventSaleRecorded,
				AggregateType: enums.AggregateSale,
				AggregateID:   sale.ID,
				Version:       1,
				Actor: &outbox.ActorRef{
					CashierID: sess.CashierID,
					StoreID:   &sess.StoreID,
					Terminal:  sess.TerminalID,
				},
				Data: payloads.SaleRecordedEvent{
					SaleID:        sale.ID,
					StoreID:       sess.StoreID,
					CashierID:     sess.CashierID,
					SaleNumber:    sale.SaleNumber,
					TotalCents:    sale.TotalCents,
					Currency:      sale.Currency,
					PaymentMethod: sale.PaymentMethod,
					ItemCount:     sale.ItemCount,
				},
			}
			if err := o.events.EmitIfNotExists(ctx, tx, event); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue sale event")
			}

			for _, productID := range depleted {
				depletedEvent := outbox.DomainEvent{
					EventType:     enums.EventStockDepleted,
					AggregateType: enums.AggregateInventory,
					AggregateID:   productID,
					Version:       1,
					Data: payloads.StockDepletedEvent{
						ProductID: productID,
						StoreID:   sess.StoreID,
						SaleID:    sale.ID,
					},
				}
				if err := o.events.EmitIfNotExists(ctx, tx, depletedEvent); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "queue stock event")
				}
			}
			return nil
		})
		if err == nil {
			return &Result{Sale: sale}, nil
		}

		// Another commit claimed the allocated number first; roll back and
		// allocate again from the fresh MAX.
		if errors.Is(err, errSaleNumberTaken) {
			if attempt < saleNumberAttempts {
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate sale number")
		}

		// Lost the idempotency race: another retry committed first. Surface
		// that sale instead of an error.
		if pkgerrors.As(err).Code() == pkgerrors.CodeIdempotency {
			existing, findErr := o.ledger.FindByIdempotencyKey(ctx, sess.StoreID, input.IdempotencyKey)
			if findErr == nil && existing != nil {
				return &Result{Sale: existing, AlreadyCommitted: true}, nil
			}
		}
		return nil, err
	}
}

// decrementStock issues the atomic conditional decrement for every tracked
// line and returns the products that hit zero.
func (o *Orchestrator) decrementStock(ctx context.Context, tx *gorm.DB, storeID uuid.UUID, snapshot cart.Cart) ([]uuid.UUID, error) {
	// Two lines can carry the same product (e.g. one discounted); decrement
	// the combined quantity once per product.
	quantities := map[uuid.UUID]int{}
	order := []uuid.UUID{}
	for _, line := range snapshot.Lines {
		if !line.TrackInventory {
			continue
		}
		if _, seen := quantities[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	var depleted []uuid.UUID
	for _, productID := range order {
		remaining, err := o.stock.Decrement(ctx, tx, productID, storeID, quantities[productID])
		if err != nil {
			return nil, err
		}
		if remaining == 0 {
			depleted = append(depleted, productID)
		}
	}
	return depleted, nil
}

func (o *Orchestrator) buildSale(snapshot cart.Cart, input Input) *models.Sale {
	sess := o.cartStore.Session()

	var notes *string
	if snapshot.Notes != "" {
		text := snapshot.Notes
		notes = &text
	}

	totals := snapshot.Totals
	return &models.Sale{
		ID:              uuid.New(),
		StoreID:         sess.StoreID,
		CashierID:       sess.CashierID,
		CustomerID:      snapshot.CustomerID,
		Currency:        sess.Currency,
		SubtotalCents:   money.ToCents(totals.Subtotal),
		DiscountCents:   money.ToCents(totals.TotalDiscount),
		TaxCents:        money.ToCents(totals.Tax),
		TotalCents:      money.ToCents(totals.GrandTotal),
		ItemCount:       snapshot.ItemCount(),
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   enums.PaymentStatusPaid,
		FulfillmentMode: snapshot.Fulfillment,
		Status:          enums.SaleStatusCompleted,
		Notes:           notes,
		IdempotencyKey:  input.IdempotencyKey,
	}
}

func buildSaleItems(saleID uuid.UUID, snapshot cart.Cart) []models.SaleItem {
	items := make([]models.SaleItem, len(snapshot.Lines))
	for i, line := range snapshot.Lines {
		items[i] = models.SaleItem{
			ID:             uuid.New(),
			SaleID:         saleID,
			ProductID:      line.ProductID,
			VariantID:      line.VariantID,
			Name:           line.Name,
			Quantity:       line.Quantity,
			UnitPriceCents: money.ToCents(line.UnitPrice),
			DiscountCents:  money.ToCents(line.Discount),
			TotalCents:     money.ToCents(line.Total),
		}
	}
	return items
}

func (o *Orchestrator) recordSuccess(input Input, started time.Time) {
	if o.metrics == nil {
		return
	}
	o.metrics.IncCommitted(string(input.PaymentMethod))
	o.metrics.ObserveDuration("committed", time.Since(started))
}

func (o *Orchestrator) recordFailure(err error, started time.Time) {
	if o.metrics == nil {
		return
	}
	code := pkgerrors.As(err).Code()
	o.metrics.IncFailed(string(code))
	o.metrics.ObserveDuration("failed", time.Since(started))
	if code == pkgerrors.CodeConflict {
		o.metrics.IncInsufficientStock()
	}
}
