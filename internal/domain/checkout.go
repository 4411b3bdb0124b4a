package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reason explains why a checkout is not valid. The empty Reason means valid.
type Reason string

const (
	ReasonNone                     Reason = ""
	ReasonNoItemsSelected          Reason = "no_items_selected"
	ReasonMethodUnavailable        Reason = "method_unavailable"
	ReasonMultipleStoresForPickup  Reason = "multiple_stores_for_pickup"
	ReasonStoreLocationUnavailable Reason = "store_location_unavailable"
)

// Err returns the sentinel error for r, nil for ReasonNone.
func (r Reason) Err() error {
	switch r {
	case ReasonNone:
		return nil
	case ReasonNoItemsSelected:
		return ErrNoItemsSelected
	case ReasonMethodUnavailable:
		return ErrMethodUnavailable
	case ReasonMultipleStoresForPickup:
		return ErrMultipleStoresForPickup
	case ReasonStoreLocationUnavailable:
		return ErrStoreLocationUnavailable
	default:
		return ErrValidationFailure
	}
}

func (r Reason) String() string {
	return string(r)
}

// CheckoutResult is computed fresh for every cart snapshot.
// ID doubles as the idempotency key of the confirmation.
type CheckoutResult struct {
	ID     uuid.UUID
	Method ShippingMethod
	Groups StoreGroups

	Subtotal    Money
	ShippingFee Money
	Total       Money

	Valid         bool
	Reason        Reason
	SelectedCount int

	PreparedAt time.Time
}
