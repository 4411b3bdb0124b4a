package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/nikolayk812/cartcheckout/internal/domain"
)

// Kind names the error class reported to clients.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""

	case errors.Is(err, domain.ErrValidationFailure):
		return "validation_failed"

	case errors.Is(err, domain.ErrCheckoutNotValid):
		return "checkout_not_valid"

	case errors.Is(err, domain.ErrDuplicateCheckout):
		return "duplicate_checkout"

	case errors.Is(err, domain.ErrCustomerRequired):
		return "missing_customer_id"

	case errors.Is(err, domain.ErrDeliveryAddressRequired):
		return "delivery_address_required"

	case errors.Is(err, domain.ErrOrderNotCancelable):
		return "order_not_cancelable"

	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"

	case errors.Is(err, domain.ErrCancellationNotConfirmed):
		return "cancellation_not_confirmed"

	case errors.Is(err, domain.ErrOrderNotFound):
		return "order_not_found"

	case errors.Is(err, domain.ErrInvalidCartItem):
		return "invalid_cart_item"

	case errors.Is(err, domain.ErrCurrencyMismatch):
		return "unsupported_currency"

	case errors.Is(err, domain.ErrExternalUnavailable):
		return "unavailable"

	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"

	case errors.Is(err, context.Canceled):
		return "canceled"

	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, domain.ErrValidationFailure),
		errors.Is(err, domain.ErrCheckoutNotValid),
		errors.Is(err, domain.ErrDeliveryAddressRequired):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrDuplicateCheckout),
		errors.Is(err, domain.ErrOrderNotCancelable),
		errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict

	case errors.Is(err, domain.ErrCancellationNotConfirmed),
		errors.Is(err, domain.ErrCustomerRequired),
		errors.Is(err, domain.ErrInvalidCartItem),
		errors.Is(err, domain.ErrCurrencyMismatch):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrExternalUnavailable):
		return http.StatusServiceUnavailable

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	case errors.Is(err, context.Canceled):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
