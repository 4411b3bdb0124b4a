package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/port"
)

// MemoryOrder keeps orders in process memory. Used when no database is configured.
type MemoryOrder struct {
	mu         sync.Mutex
	orders     map[uuid.UUID]domain.Order
	byCheckout map[uuid.UUID]uuid.UUID
}

var _ port.OrderRepository = (*MemoryOrder)(nil)

func NewMemoryOrder() *MemoryOrder {
	return &MemoryOrder{
		orders:     make(map[uuid.UUID]domain.Order),
		byCheckout: make(map[uuid.UUID]uuid.UUID),
	}
}

func (r *MemoryOrder) SaveOrder(ctx context.Context, order domain.Order) error {
	if order.ID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byCheckout[order.CheckoutID]; ok {
		return fmt.Errorf("checkout[%s]: %w", order.CheckoutID, domain.ErrDuplicateCheckout)
	}

	r.orders[order.ID] = order.Clone()
	r.byCheckout[order.CheckoutID] = order.ID

	return nil
}

func (r *MemoryOrder) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrOrderNotFound)
	}

	return order.Clone(), nil
}

func (r *MemoryOrder) ListOrders(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	if customerID == uuid.Nil {
		return nil, fmt.Errorf("customerID is empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]domain.Order, 0)
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			orders = append(orders, order.Clone())
		}
	}

	slices.SortFunc(orders, compareNewestFirst)

	return orders, nil
}

func compareNewestFirst(a, b domain.Order) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID.String(), a.ID.String())
}

func (r *MemoryOrder) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrOrderNotFound)
	}
	if order.Status != from {
		return fmt.Errorf("order[%s] is no longer %s: %w", orderID, from, domain.ErrStatusConflict)
	}

	order.Status = to
	order.UpdatedAt = at
	switch to {
	case domain.OrderStatusCancelled:
		order.CancelledAt = &at
	case domain.OrderStatusDelivered:
		order.DeliveredAt = &at
	}
	r.orders[orderID] = order

	return nil
}

// Count returns the number of stored orders.
func (r *MemoryOrder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.orders)
}

// MemoryStoreDirectory keeps store records in process memory.
type MemoryStoreDirectory struct {
	mu     sync.RWMutex
	stores map[uuid.UUID]domain.Store
}

var (
	_ port.StoreDirectory = (*MemoryStoreDirectory)(nil)
	_ port.StoreWriter    = (*MemoryStoreDirectory)(nil)
)

func NewMemoryStoreDirectory(stores ...domain.Store) *MemoryStoreDirectory {
	m := make(map[uuid.UUID]domain.Store, len(stores))
	for _, s := range stores {
		m[s.ID] = s
	}
	return &MemoryStoreDirectory{stores: m}
}

func (d *MemoryStoreDirectory) Lookup(ctx context.Context, storeID uuid.UUID) (domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return domain.Store{}, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	store, ok := d.stores[storeID]
	if !ok {
		return domain.Store{}, fmt.Errorf("store[%s]: %w", storeID, domain.ErrStoreNotFound)
	}
	return store, nil
}

func (d *MemoryStoreDirectory) Upsert(ctx context.Context, store domain.Store) error {
	if store.ID == uuid.Nil {
		return fmt.Errorf("storeID is empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.stores[store.ID] = store
	return nil
}
