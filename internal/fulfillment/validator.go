// Package fulfillment checks that a shipping method fits the store grouping of a cart.
package fulfillment

import "github.com/nikolayk812/cartcheckout/internal/domain"

type Result struct {
	Valid  bool
	Reason domain.Reason
}

// Err returns nil for a valid result, the reason's sentinel otherwise.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return r.Reason.Err()
}

// Validate applies the rules in priority order and reports the first failure:
// no items, unavailable method, several stores for pickup, pickup store without location.
func Validate(groups domain.StoreGroups, method domain.ShippingMethod) Result {
	if groups.ItemCount() == 0 {
		return invalid(domain.ReasonNoItemsSelected)
	}

	if !method.Enabled() {
		return invalid(domain.ReasonMethodUnavailable)
	}

	if method == domain.ShippingPickUp {
		if len(groups) > 1 {
			return invalid(domain.ReasonMultipleStoresForPickup)
		}

		store := groups[0].Store
		if store == nil || !store.HasPickupLocation() {
			return invalid(domain.ReasonStoreLocationUnavailable)
		}
	}

	return Result{Valid: true}
}

func invalid(reason domain.Reason) Result {
	return Result{Valid: false, Reason: reason}
}
