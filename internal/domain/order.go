package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusCreated    OrderStatus = "created"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderStatusCreated, OrderStatusProcessing, OrderStatusDelivered, OrderStatusCancelled:
		return st, nil
	default:
		return "", fmt.Errorf("order status[%s] is not known", s)
	}
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	return string(s)
}

// LineItem is a copy of a cart item taken at confirmation time.
type LineItem struct {
	ItemID    uuid.UUID
	StoreID   uuid.UUID
	UnitPrice Money
	Quantity  int
}

// Customer places an order. DeliveryAddress is only kept for door-to-door orders.
type Customer struct {
	ID              uuid.UUID
	DeliveryAddress string
}

// ValidateFor checks that the customer carries what method needs.
func (c Customer) ValidateFor(method ShippingMethod) error {
	if c.ID == uuid.Nil {
		return ErrCustomerRequired
	}
	if method == ShippingDoorToDoor && strings.TrimSpace(c.DeliveryAddress) == "" {
		return fmt.Errorf("customer[%s] %s: %w", c.ID, method, ErrDeliveryAddressRequired)
	}
	return nil
}

// AddressFor returns the delivery address snapshot stored on an order placed with method.
func (c Customer) AddressFor(method ShippingMethod) string {
	if method != ShippingDoorToDoor {
		return ""
	}
	return strings.TrimSpace(c.DeliveryAddress)
}

type Order struct {
	ID         uuid.UUID
	CheckoutID uuid.UUID
	CustomerID uuid.UUID
	Items      []LineItem
	Method     ShippingMethod

	DeliveryAddress string

	Subtotal    Money
	ShippingFee Money
	Total       Money

	Status      OrderStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time
	DeliveredAt *time.Time
}

// Clone returns a deep copy, so callers never share the item slice or timestamps.
func (o Order) Clone() Order {
	c := o
	c.Items = append([]LineItem(nil), o.Items...)
	if o.CancelledAt != nil {
		t := *o.CancelledAt
		c.CancelledAt = &t
	}
	if o.DeliveredAt != nil {
		t := *o.DeliveredAt
		c.DeliveredAt = &t
	}
	return c
}

// SnapshotLineItems copies the items of groups in group order.
func SnapshotLineItems(groups StoreGroups) []LineItem {
	items := make([]LineItem, 0, groups.ItemCount())
	for _, group := range groups {
		for _, item := range group.Items {
			items = append(items, LineItem{
				ItemID:    item.ID,
				StoreID:   item.StoreID,
				UnitPrice: item.UnitPrice,
				Quantity:  item.Quantity,
			})
		}
	}
	return items
}

// OrderEvent is emitted after an order status change has been persisted.
type OrderEvent struct {
	OrderID    uuid.UUID
	CheckoutID uuid.UUID
	CustomerID uuid.UUID
	Status     OrderStatus
	Total      Money
	OccurredAt time.Time
}

func NewOrderEvent(o Order, at time.Time) OrderEvent {
	return OrderEvent{
		OrderID:    o.ID,
		CheckoutID: o.CheckoutID,
		CustomerID: o.CustomerID,
		Status:     o.Status,
		Total:      o.Total,
		OccurredAt: at,
	}
}
