package terminal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/FyliaCare/WarehousePOS-sub000/internal/cart"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/catalog"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/checkout"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/holds"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/inventory"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/sales"
	"github.com/FyliaCare/WarehousePOS-sub000/internal/session"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/logger"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/metrics"
	"github.com/FyliaCare/WarehousePOS-sub000/pkg/outbox"
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Terminal bundles the per-register state: the active cart, the held-sale
// queue and the checkout state machine. One Terminal exists per
// (store, register) pair for as long as the register is in use.
type Terminal struct {
	Session  session.Session
	Cart     *cart.Store
	Holds    *holds.Queue
	Checkout *checkout.Orchestrator
}

// Manager creates and caches Terminals. It is the explicit owner the cart
// lifecycle hangs off: constructed once at startup, injected into the API
// layer, never a package-level singleton.
type Manager struct {
	mu        sync.Mutex
	terminals map[string]*Terminal

	catalog         catalog.Lookup
	ledger          sales.Repository
	stock           inventory.Store
	tx              TxRunner
	events          *outbox.Service
	checkoutMetrics *metrics.CheckoutMetrics
	logg            *logger.Logger
	checkoutTimeout time.Duration
}

// NewManager builds a terminal manager with shared backing collaborators.
func NewManager(
	lookup catalog.Lookup,
	ledger sales.Repository,
	stock inventory.Store,
	tx TxRunner,
	events *outbox.Service,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
	checkoutTimeout time.Duration,
) (*Manager, error) {
	if lookup == nil {
		return nil, fmt.Errorf("catalog lookup required")
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
		return nil, fmt.Errorf("outbox service required")
	}
	return &Manager{
		terminals:       map[string]*Terminal{},
		catalog:         lookup,
		ledger:          ledger,
		stock:           stock,
		tx:              tx,
		events:          events,
		checkoutMetrics: checkoutMetrics,
		logg:            logg,
		checkoutTimeout: checkoutTimeout,
	}, nil
}

// Acquire returns the Terminal for the session's register, creating it on
// first use. Subsequent requests from the same register reuse the same cart
// and held-sale queue.
func (m *Manager) Acquire(sess session.Session) (*Terminal, error) {
	key := terminalKey(sess)

	m.mu.Lock()
	defer m.mu.Unlock()

	if term, ok := m.terminals[key]; ok {
		return term, nil
	}

	cartStore, err := cart.NewStore(sess, m.catalog)
	if err != nil {
		return nil, err
	}
	orch, err := checkout.NewOrchestrator(
		cartStore, m.ledger, m.stock, m.tx, m.events,
		m.checkoutMetrics, m.logg, m.checkoutTimeout,
	)
	if err != nil {
		return nil, err
	}

	term := &Terminal{
		Session:  sess,
		Cart:     cartStore,
		Holds:    holds.NewQueue(),
		Checkout: orch,
	}
	m.terminals[key] = term
	return term, nil
}

// Release drops the register's state, e.g. on cashier sign-out. Held sales
// on that register are discarded with it.
func (m *Manager) Release(sess session.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.terminals, terminalKey(sess))
}

// Count reports how many registers currently hold state.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.terminals)
}

func terminalKey(sess session.Session) string {
	return sess.StoreID.String() + "/" + sess.TerminalID
}
