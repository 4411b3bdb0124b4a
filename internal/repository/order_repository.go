package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartcheckout/internal/db"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/port"
	"golang.org/x/text/currency"
)

const (
	uniqueViolation      = "23505"
	checkoutIDConstraint = "orders_checkout_id_key"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

// SaveOrder inserts the order and its line items in one transaction.
func (r *orderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	if order.ID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}
	if len(order.Items) > math.MaxInt32 {
		return fmt.Errorf("order[%s] has %d items: %w", order.ID, len(order.Items), domain.ErrInvalidCartItem)
	}
	for _, item := range order.Items {
		if item.Quantity <= 0 || item.Quantity > domain.MaxQuantity {
			return fmt.Errorf("item[%s] quantity %d out of range: %w", item.ItemID, item.Quantity, domain.ErrInvalidCartItem)
		}
	}

	return inTx(ctx, r.pool, r.q, func(q *db.Queries) error {
		err := q.InsertOrder(ctx, db.InsertOrderParams{
			ID:              order.ID,
			CheckoutID:      order.CheckoutID,
			CustomerID:      order.CustomerID,
			Status:          order.Status.String(),
			ShippingMethod:  order.Method.String(),
			DeliveryAddress: order.DeliveryAddress,
			Currency:        order.Total.Currency.String(),
			SubtotalAmount:  order.Subtotal.Amount,
			ShippingAmount:  order.ShippingFee.Amount,
			TotalAmount:     order.Total.Amount,
			CreatedAt:       order.CreatedAt,
			UpdatedAt:       order.UpdatedAt,
			CancelledAt:     order.CancelledAt,
			DeliveredAt:     order.DeliveredAt,
		})
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == checkoutIDConstraint {
				return fmt.Errorf("checkout[%s]: %w", order.CheckoutID, domain.ErrDuplicateCheckout)
			}
			return fmt.Errorf("q.InsertOrder: %w", err)
		}

		for i, item := range order.Items {
			err := q.InsertOrderItem(ctx, db.InsertOrderItemParams{
				OrderID:           order.ID,
				Position:          int32(i),
				ItemID:            item.ItemID,
				StoreID:           item.StoreID,
				UnitPriceAmount:   item.UnitPrice.Amount,
				UnitPriceCurrency: item.UnitPrice.Currency.String(),
				Quantity:          int32(item.Quantity),
			})
			if err != nil {
				return fmt.Errorf("q.InsertOrderItem: %w", err)
			}
		}

		return nil
	})
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	if orderID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("orderID is empty")
	}

	row, err := r.q.GetOrder(ctx, orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order[%s]: %w", orderID, domain.ErrOrderNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	itemRows, err := r.q.GetOrderItems(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	order, err := mapOrderToDomain(row, itemRows)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderToDomain: %w", err)
	}

	return order, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	if customerID == uuid.Nil {
		return nil, fmt.Errorf("customerID is empty")
	}

	rows, err := r.q.ListOrdersByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrdersByCustomer: %w", err)
	}
	if len(rows) == 0 {
		return []domain.Order{}, nil
	}

	orderIDs := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		orderIDs = append(orderIDs, row.ID)
	}

	itemRows, err := r.q.GetOrderItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("q.GetOrderItemsByOrderIDs: %w", err)
	}

	itemsByOrder := make(map[uuid.UUID][]db.GetOrderItemsRow, len(rows))
	for _, item := range itemRows {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], db.GetOrderItemsRow{
			ItemID:            item.ItemID,
			StoreID:           item.StoreID,
			UnitPriceAmount:   item.UnitPriceAmount,
			UnitPriceCurrency: item.UnitPriceCurrency,
			Quantity:          item.Quantity,
		})
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		order, err := mapOrderToDomain(row, itemsByOrder[row.ID])
		if err != nil {
			return nil, fmt.Errorf("mapOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// UpdateStatus is a compare-and-set on the stored status.
func (r *orderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, from, to domain.OrderStatus, at time.Time) error {
	if orderID == uuid.Nil {
		return fmt.Errorf("orderID is empty")
	}

	rowsAffected, err := r.q.UpdateOrderStatus(ctx, db.UpdateOrderStatusParams{
		ToStatus:   to.String(),
		ChangedAt:  at,
		ID:         orderID,
		FromStatus: from.String(),
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrderStatus: %w", err)
	}

	if rowsAffected > 0 {
		return nil
	}

	exists, err := r.q.OrderExists(ctx, orderID)
	if err != nil {
		return fmt.Errorf("q.OrderExists: %w", err)
	}
	if !exists {
		return fmt.Errorf("order[%s]: %w", orderID, domain.ErrOrderNotFound)
	}

	return fmt.Errorf("order[%s] is no longer %s: %w", orderID, from, domain.ErrStatusConflict)
}

func mapOrderToDomain(row db.Order, itemRows []db.GetOrderItemsRow) (domain.Order, error) {
	cur, err := currency.ParseISO(row.Currency)
	if err != nil {
		return domain.Order{}, fmt.Errorf("currency[%s] is not valid: %w", row.Currency, err)
	}

	status, err := domain.ParseOrderStatus(row.Status)
	if err != nil {
		return domain.Order{}, fmt.Errorf("domain.ParseOrderStatus: %w", err)
	}

	items, err := mapOrderItemRowsToDomain(itemRows)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapOrderItemRowsToDomain: %w", err)
	}

	return domain.Order{
		ID:              row.ID,
		CheckoutID:      row.CheckoutID,
		CustomerID:      row.CustomerID,
		Items:           items,
		Method:          domain.ShippingMethod(row.ShippingMethod),
		DeliveryAddress: row.DeliveryAddress,
		Subtotal:        domain.Money{Amount: row.SubtotalAmount, Currency: cur},
		ShippingFee:     domain.Money{Amount: row.ShippingAmount, Currency: cur},
		Total:           domain.Money{Amount: row.TotalAmount, Currency: cur},
		Status:          status,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
		CancelledAt:     row.CancelledAt,
		DeliveredAt:     row.DeliveredAt,
	}, nil
}

func mapOrderItemRowToDomain(row db.GetOrderItemsRow) (domain.LineItem, error) {
	cur, err := currency.ParseISO(row.UnitPriceCurrency)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("currency[%s] is not valid: %w", row.UnitPriceCurrency, err)
	}

	return domain.LineItem{
		ItemID:    row.ItemID,
		StoreID:   row.StoreID,
		UnitPrice: domain.Money{Amount: row.UnitPriceAmount, Currency: cur},
		Quantity:  int(row.Quantity),
	}, nil
}

func mapOrderItemRowsToDomain(rows []db.GetOrderItemsRow) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(rows))

	for _, row := range rows {
		item, err := mapOrderItemRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapOrderItemRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
