package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidationFailure = errors.New("checkout validation failed")

	ErrNoItemsSelected          = fmt.Errorf("%w: no items selected", ErrValidationFailure)
	ErrMethodUnavailable        = fmt.Errorf("%w: shipping method unavailable", ErrValidationFailure)
	ErrMultipleStoresForPickup  = fmt.Errorf("%w: pickup requires items from a single store", ErrValidationFailure)
	ErrStoreLocationUnavailable = fmt.Errorf("%w: store location unavailable", ErrValidationFailure)
)

var (
	ErrCheckoutNotValid  = errors.New("checkout is not valid")
	ErrDuplicateCheckout = errors.New("order for this checkout already exists")

	ErrCustomerRequired        = errors.New("customer id is empty")
	ErrDeliveryAddressRequired = errors.New("delivery address is required")

	ErrInvalidTransition        = errors.New("invalid order status transition")
	ErrCancellationNotConfirmed = errors.New("order cancellation is not confirmed")
	ErrOrderNotCancelable       = errors.New("order cannot be cancelled")
	ErrStatusConflict           = errors.New("order status changed concurrently")

	ErrOrderNotFound = errors.New("order not found")
	ErrStoreNotFound = errors.New("store not found")

	// ErrExternalUnavailable marks a failed or timed out collaborator call. Callers may retry.
	ErrExternalUnavailable = errors.New("external service unavailable")
)

// Data-integrity faults. They point at a bug upstream, not at shopper input.
var (
	ErrMoneyOverflow    = errors.New("money overflow")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrNegativeAmount   = errors.New("negative amount")
	ErrInvalidCartItem  = errors.New("invalid cart item")
)

// ExternalError wraps a collaborator failure as ErrExternalUnavailable unless
// err matches one of the expected outcomes, which are wrapped unchanged.
func ExternalError(op string, err error, expected ...error) error {
	for _, target := range expected {
		if errors.Is(err, target) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if errors.Is(err, ErrExternalUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrExternalUnavailable, err)
}
