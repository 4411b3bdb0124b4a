// Package checkout is the entry point used by presentation layers: it prepares
// and confirms checkouts and cancels orders.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/fulfillment"
	"github.com/nikolayk812/cartcheckout/internal/grouping"
	"github.com/nikolayk812/cartcheckout/internal/lifecycle"
	"github.com/nikolayk812/cartcheckout/internal/port"
	"github.com/nikolayk812/cartcheckout/internal/pricing"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/currency"
)

type Config struct {
	Currency       currency.Unit
	LookupTimeout  time.Duration
	QuoteTimeout   time.Duration
	PersistTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Currency == (currency.Unit{}) {
		c.Currency = currency.MustParseISO("PHP")
	}
	if c.LookupTimeout <= 0 {
		c.LookupTimeout = 2 * time.Second
	}
	if c.QuoteTimeout <= 0 {
		c.QuoteTimeout = pricing.DefaultQuoteTimeout
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = lifecycle.DefaultPersistTimeout
	}
	return c
}

type Orchestrator struct {
	cfg       Config
	stores    port.StoreDirectory
	calc      *pricing.Calculator
	repo      port.OrderRepository
	lifecycle *lifecycle.Service
	events    port.OrderEventPublisher
	logger    *zap.Logger

	confirming singleflight.Group

	now   func() time.Time
	newID func() uuid.UUID
}

func New(
	cfg Config,
	stores port.StoreDirectory,
	quoter port.RateQuoter,
	repo port.OrderRepository,
	events port.OrderEventPublisher,
	logger *zap.Logger,
) *Orchestrator {
	if stores == nil {
		panic("checkout.New: nil store directory")
	}
	if repo == nil {
		panic("checkout.New: nil order repository")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg = cfg.withDefaults()

	return &Orchestrator{
		cfg:       cfg,
		stores:    stores,
		calc:      pricing.New(quoter, cfg.QuoteTimeout),
		repo:      repo,
		lifecycle: lifecycle.NewService(repo, cfg.PersistTimeout, logger),
		events:    events,
		logger:    logger,
		now:       time.Now,
		newID:     uuid.New,
	}
}

// PrepareCheckout groups the selected items, validates method against the
// grouping and prices the result. An invalid checkout is reported through
// Valid and Reason, with shipping left at zero; the error return is kept for
// collaborator failures and corrupt cart data.
func (o *Orchestrator) PrepareCheckout(ctx context.Context, items []domain.CartItem, method domain.ShippingMethod) (domain.CheckoutResult, error) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return domain.CheckoutResult{}, err
		}
		if item.UnitPrice.Currency != o.cfg.Currency {
			return domain.CheckoutResult{}, fmt.Errorf("item[%s] priced in %s: %w", item.ID, item.UnitPrice.Currency, domain.ErrCurrencyMismatch)
		}
	}

	selected := grouping.Selected(items)
	groups := grouping.GroupByStore(selected)

	// Only a single-store pickup reaches the location rule.
	if method == domain.ShippingPickUp && len(groups) == 1 {
		if err := o.resolveStores(ctx, groups); err != nil {
			return domain.CheckoutResult{}, err
		}
	}

	verdict := fulfillment.Validate(groups, method)

	result := domain.CheckoutResult{
		ID:            o.newID(),
		Method:        method,
		Groups:        groups,
		Valid:         verdict.Valid,
		Reason:        verdict.Reason,
		SelectedCount: len(selected),
		PreparedAt:    o.now().UTC(),
	}

	if !verdict.Valid {
		subtotal, err := pricing.Subtotal(groups, o.cfg.Currency)
		if err != nil {
			return domain.CheckoutResult{}, fmt.Errorf("pricing.Subtotal: %w", err)
		}

		result.Subtotal = subtotal
		result.ShippingFee = domain.Zero(o.cfg.Currency)
		result.Total = subtotal

		o.logger.Debug("checkout invalid",
			zap.Stringer("method", method),
			zap.Stringer("reason", verdict.Reason),
			zap.Int("selected", len(selected)),
		)
		return result, nil
	}

	totals, err := o.calc.ComputeTotals(ctx, groups, method, o.cfg.Currency)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("calc.ComputeTotals: %w", err)
	}

	result.Subtotal = totals.Subtotal
	result.ShippingFee = totals.ShippingFee
	result.Total = totals.Total

	return result, nil
}

func (o *Orchestrator) resolveStores(ctx context.Context, groups domain.StoreGroups) error {
	for i := range groups {
		store, err := o.lookupStore(ctx, groups[i].StoreID)
		if errors.Is(err, domain.ErrStoreNotFound) {
			o.logger.Warn("store not in directory", zap.Stringer("store_id", groups[i].StoreID))
			continue
		}
		if err != nil {
			return err
		}
		groups[i].Store = &store
	}
	return nil
}

func (o *Orchestrator) lookupStore(ctx context.Context, storeID uuid.UUID) (domain.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.LookupTimeout)
	defer cancel()

	store, err := o.stores.Lookup(ctx, storeID)
	if err != nil {
		return domain.Store{}, domain.ExternalError(fmt.Sprintf("stores.Lookup store[%s]", storeID), err, domain.ErrStoreNotFound)
	}
	return store, nil
}

// ConfirmCheckout turns a valid result into an order in processing status owned by customer.
// The order is written once, already transitioned, so a failure leaves nothing behind.
// Concurrent confirmations of one result share a single write; later repeats
// fail with domain.ErrDuplicateCheckout.
func (o *Orchestrator) ConfirmCheckout(ctx context.Context, result domain.CheckoutResult, customer domain.Customer) (domain.Order, error) {
	if !result.Valid {
		return domain.Order{}, fmt.Errorf("reason %q: %w", result.Reason, domain.ErrCheckoutNotValid)
	}
	if result.ID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("checkout id is empty")
	}
	if err := customer.ValidateFor(result.Method); err != nil {
		return domain.Order{}, err
	}

	// The shared write outlives any single caller; saveOrder bounds it.
	writeCtx := context.WithoutCancel(ctx)

	v, err, shared := o.confirming.Do(result.ID.String(), func() (any, error) {
		return o.placeOrder(writeCtx, result, customer)
	})
	if err != nil {
		return domain.Order{}, err
	}

	order := v.(domain.Order)
	if shared {
		o.logger.Info("checkout confirmation shared",
			zap.Stringer("checkout_id", result.ID),
			zap.Stringer("order_id", order.ID),
		)
	}

	return order.Clone(), nil
}

func (o *Orchestrator) placeOrder(ctx context.Context, result domain.CheckoutResult, customer domain.Customer) (domain.Order, error) {
	at := o.now().UTC()

	order := domain.Order{
		ID:              o.newID(),
		CheckoutID:      result.ID,
		CustomerID:      customer.ID,
		Items:           domain.SnapshotLineItems(result.Groups),
		Method:          result.Method,
		DeliveryAddress: customer.AddressFor(result.Method),
		Subtotal:        result.Subtotal,
		ShippingFee:     result.ShippingFee,
		Total:           result.Total,
		Status:          domain.OrderStatusCreated,
		CreatedAt:       at,
		UpdatedAt:       at,
	}

	if err := lifecycle.Apply(&order, lifecycle.EventConfirmPlacement, at); err != nil {
		return domain.Order{}, fmt.Errorf("lifecycle.Apply: %w", err)
	}

	if err := o.saveOrder(ctx, order); err != nil {
		return domain.Order{}, err
	}

	o.logger.Info("order placed",
		zap.Stringer("order_id", order.ID),
		zap.Stringer("checkout_id", order.CheckoutID),
		zap.Stringer("total", order.Total),
	)
	o.publish(ctx, order, at)

	return order, nil
}

func (o *Orchestrator) saveOrder(ctx context.Context, order domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, o.cfg.PersistTimeout)
	defer cancel()

	if err := o.repo.SaveOrder(ctx, order); err != nil {
		return domain.ExternalError("repo.SaveOrder", err, domain.ErrDuplicateCheckout)
	}
	return nil
}

// CancelOrder cancels the order named by the shopper's confirmation.
// Delivered or cancelled orders yield domain.ErrOrderNotCancelable.
func (o *Orchestrator) CancelOrder(ctx context.Context, c lifecycle.Confirmation) (domain.Order, error) {
	order, err := o.lifecycle.RequestCancellation(ctx, c)
	if errors.Is(err, domain.ErrInvalidTransition) {
		return domain.Order{}, fmt.Errorf("%w: %w", domain.ErrOrderNotCancelable, err)
	}
	if err != nil {
		return domain.Order{}, err
	}

	o.publish(ctx, order, *order.CancelledAt)
	return order, nil
}

// MarkDelivered records the fulfillment signal for a processing order.
func (o *Orchestrator) MarkDelivered(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := o.lifecycle.MarkDelivered(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}

	o.publish(ctx, order, *order.DeliveredAt)
	return order, nil
}

func (o *Orchestrator) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	return o.lifecycle.Get(ctx, orderID)
}

// ListOrders returns the customer's orders, newest first.
func (o *Orchestrator) ListOrders(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	if customerID == uuid.Nil {
		return nil, domain.ErrCustomerRequired
	}

	ctx, cancel := context.WithTimeout(ctx, o.cfg.PersistTimeout)
	defer cancel()

	orders, err := o.repo.ListOrders(ctx, customerID)
	if err != nil {
		return nil, domain.ExternalError("repo.ListOrders", err)
	}
	return orders, nil
}

// publish is best effort: the order is already committed.
func (o *Orchestrator) publish(ctx context.Context, order domain.Order, at time.Time) {
	if o.events == nil {
		return
	}

	if err := o.events.Publish(ctx, domain.NewOrderEvent(order, at)); err != nil {
		o.logger.Error("order event not published",
			zap.Stringer("order_id", order.ID),
			zap.Stringer("status", order.Status),
			zap.Error(err),
		)
	}
}
