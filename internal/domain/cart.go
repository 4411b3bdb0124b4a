package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
)

// MaxQuantity is the largest quantity a line item can be stored with.
const MaxQuantity = math.MaxInt32

type CartItem struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	UnitPrice Money
	Quantity  int
	Selected  bool
}

// LineTotal is UnitPrice multiplied by Quantity.
func (i CartItem) LineTotal() (Money, error) {
	return i.UnitPrice.Mul(int64(i.Quantity))
}

func (i CartItem) Validate() error {
	if i.ID == uuid.Nil {
		return fmt.Errorf("item id is empty: %w", ErrInvalidCartItem)
	}
	if i.StoreID == uuid.Nil {
		return fmt.Errorf("item[%s] store id is empty: %w", i.ID, ErrInvalidCartItem)
	}
	if i.Quantity <= 0 {
		return fmt.Errorf("item[%s] quantity %d is not positive: %w", i.ID, i.Quantity, ErrInvalidCartItem)
	}
	if i.Quantity > MaxQuantity {
		return fmt.Errorf("item[%s] quantity %d exceeds %d: %w", i.ID, i.Quantity, MaxQuantity, ErrInvalidCartItem)
	}
	if i.UnitPrice.IsNegative() {
		return fmt.Errorf("item[%s] unit price is negative: %w", i.ID, ErrInvalidCartItem)
	}
	return nil
}

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

type Store struct {
	ID       uuid.UUID
	Name     string
	Address  string
	Location *Coordinates
}

// HasPickupLocation reports whether the store can be shown as a pickup destination.
func (s Store) HasPickupLocation() bool {
	if strings.TrimSpace(s.Address) != "" {
		return true
	}
	return s.Location != nil && s.Location.Valid()
}

// StoreGroup holds the cart items sold by one store, in cart order.
// Store is nil until resolved, or when the directory does not know the store.
type StoreGroup struct {
	StoreID uuid.UUID
	Store   *Store
	Items   []CartItem
}

// StoreGroups is ordered by the first occurrence of each store in the cart.
type StoreGroups []StoreGroup

func (g StoreGroups) Get(storeID uuid.UUID) (StoreGroup, bool) {
	for _, group := range g {
		if group.StoreID == storeID {
			return group, true
		}
	}
	return StoreGroup{}, false
}

func (g StoreGroups) StoreIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(g))
	for _, group := range g {
		ids = append(ids, group.StoreID)
	}
	return ids
}

func (g StoreGroups) ItemCount() int {
	var n int
	for _, group := range g {
		n += len(group.Items)
	}
	return n
}
