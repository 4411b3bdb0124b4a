// Package lifecycle moves orders through created, processing, delivered and cancelled.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
)

type Event string

const (
	EventConfirmPlacement    Event = "confirm_placement"
	EventMarkDelivered       Event = "mark_delivered"
	EventRequestCancellation Event = "request_cancellation"
)

// Next returns the status order reaches on ev without changing order.
// Delivered and cancelled orders reject every event.
func Next(order domain.Order, ev Event) (domain.OrderStatus, error) {
	from := order.Status

	if from.IsTerminal() {
		return "", fmt.Errorf("%s on %s order: %w", ev, from, domain.ErrInvalidTransition)
	}

	switch {
	case ev == EventConfirmPlacement && from == domain.OrderStatusCreated:
		if len(order.Items) == 0 {
			return "", fmt.Errorf("%s: order has no items: %w", ev, domain.ErrInvalidTransition)
		}
		if !order.Total.IsPositive() {
			return "", fmt.Errorf("%s: order total %s is not positive: %w", ev, order.Total, domain.ErrInvalidTransition)
		}
		return domain.OrderStatusProcessing, nil

	case ev == EventMarkDelivered && from == domain.OrderStatusProcessing:
		return domain.OrderStatusDelivered, nil

	case ev == EventRequestCancellation && (from == domain.OrderStatusCreated || from == domain.OrderStatusProcessing):
		return domain.OrderStatusCancelled, nil
	}

	return "", fmt.Errorf("%s on %s order: %w", ev, from, domain.ErrInvalidTransition)
}

// Apply moves order to the status reached on ev and stamps the timestamps.
// order is left untouched when the transition is rejected.
func Apply(order *domain.Order, ev Event, at time.Time) error {
	to, err := Next(*order, ev)
	if err != nil {
		return err
	}

	order.Status = to
	order.UpdatedAt = at

	switch to {
	case domain.OrderStatusCancelled:
		order.CancelledAt = &at
	case domain.OrderStatusDelivered:
		order.DeliveredAt = &at
	}

	return nil
}

// Confirmation proves that the shopper affirmed the cancellation of one order.
// Only ConfirmCancellation can produce a non-zero value.
type Confirmation struct {
	orderID     uuid.UUID
	confirmedAt time.Time
}

// ConfirmCancellation is called by the presentation layer once the shopper
// has answered the cancellation dialog affirmatively.
func ConfirmCancellation(orderID uuid.UUID, at time.Time) Confirmation {
	return Confirmation{orderID: orderID, confirmedAt: at}
}

func (c Confirmation) OrderID() uuid.UUID {
	return c.orderID
}

func (c Confirmation) ConfirmedAt() time.Time {
	return c.confirmedAt
}

func (c Confirmation) IsZero() bool {
	return c.orderID == uuid.Nil
}
