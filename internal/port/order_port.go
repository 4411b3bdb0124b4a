package port

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
)

// OrderRepository persists orders. UpdateStatus only succeeds while the stored
// status still equals from, otherwise it returns domain.ErrStatusConflict.
// ListOrders returns a customer's orders newest first.
type OrderRepository interface {
	SaveOrder(ctx context.Context, order domain.Order) error
	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListOrders(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus, at time.Time) error
}

type OrderEventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}
