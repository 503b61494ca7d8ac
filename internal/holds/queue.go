package holds

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FyliaCare/WarehousePOS-sub000/internal/cart"
	pkgerrors "github.com/FyliaCare/WarehousePOS-sub000/pkg/errors"
)

// HeldSale is an immutable parked snapshot of a cart. It is consumed whole on
// resume and never mutated in place.
type HeldSale struct {
	ID     uuid.UUID
	Cart   cart.Cart
	HeldAt time.Time
}

// Queue stores held sales for one terminal session. Entries are resumable in
// any order; List presents them oldest first.
type Queue struct {
	mu      sync.Mutex
	entries map[uuid.UUID]HeldSale
	clock   func() time.Time
}

// NewQueue builds an empty held-sale queue.
func NewQueue() *Queue {
	return &Queue{
		entries: map[uuid.UUID]HeldSale{},
		clock:   time.Now,
	}
}

// Hold snapshots the store's cart into a new held sale and clears the active
// cart. Holding an empty cart is rejected.
func (q *Queue) Hold(store *cart.Store) (HeldSale, error) {
	snapshot := store.Snapshot()
	if snapshot.IsEmpty() {
		return HeldSale{}, pkgerrors.New(pkgerrors.CodeValidation, "cannot hold an empty cart")
	}

	held := q.park(snapshot)
	store.Clear()
	return held, nil
}

// Resume loads a held sale back into the active cart and removes it from the
// queue. A non-empty active cart is parked along the way so resuming can
// never lose an in-progress sale.
func (q *Queue) Resume(store *cart.Store, id uuid.UUID) (cart.Cart, error) {
	q.mu.Lock()
	target, ok := q.entries[id]
	q.mu.Unlock()
	if !ok {
		return store.Snapshot(), pkgerrors.New(pkgerrors.CodeNotFound, "held sale not found")
	}

	active := store.Snapshot()

	restored, err := store.Restore(target.Cart)
	if err != nil {
		return store.Snapshot(), err
	}

	// Park the displaced cart only once the restore has landed; a failed
	// restore leaves the active cart and the queue exactly as they were.
	if !active.IsEmpty() {
		q.park(active)
	}

	q.mu.Lock()
	delete(q.entries, id)
	q.mu.Unlock()

	return restored, nil
}

// List returns the held sales ordered by hold time ascending.
func (q *Queue) List() []HeldSale {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]HeldSale, 0, len(q.entries))
	for _, held := range q.entries {
		held.Cart = held.Cart.Clone()
		out = append(out, held)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].HeldAt.Equal(out[j].HeldAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].HeldAt.Before(out[j].HeldAt)
	})
	return out
}

// Len reports the number of parked sales.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

func (q *Queue) park(snapshot cart.Cart) HeldSale {
	held := HeldSale{
		ID:     uuid.New(),
		Cart:   snapshot.Clone(),
		HeldAt: q.clock(),
	}

	q.mu.Lock()
	q.entries[held.ID] = held
	q.mu.Unlock()

	// Callers get their own copy so stored snapshots stay immutable.
	held.Cart = held.Cart.Clone()
	return held
}
