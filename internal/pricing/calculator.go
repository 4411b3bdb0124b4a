// Package pricing computes checkout totals in integer minor units.
package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/port"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"
)

const DefaultQuoteTimeout = 3 * time.Second

type Totals struct {
	Subtotal    domain.Money
	ShippingFee domain.Money
	Total       domain.Money
	// Fees holds the shipping fee of each group, in group order.
	Fees []domain.Money
}

type Calculator struct {
	quoter  port.RateQuoter
	timeout time.Duration
}

// New returns a Calculator. A non-positive timeout means DefaultQuoteTimeout.
func New(quoter port.RateQuoter, timeout time.Duration) *Calculator {
	if quoter == nil {
		panic("pricing.New: nil quoter")
	}
	if timeout <= 0 {
		timeout = DefaultQuoteTimeout
	}
	return &Calculator{
		quoter:  quoter,
		timeout: timeout,
	}
}

// Subtotal sums unit price times quantity over every item of every group.
func Subtotal(groups domain.StoreGroups, cur currency.Unit) (domain.Money, error) {
	subtotal := domain.Zero(cur)

	for _, group := range groups {
		for _, item := range group.Items {
			line, err := item.LineTotal()
			if err != nil {
				return domain.Money{}, fmt.Errorf("item[%s].LineTotal: %w", item.ID, err)
			}

			subtotal, err = subtotal.Add(line)
			if err != nil {
				return domain.Money{}, fmt.Errorf("subtotal.Add: %w", err)
			}
		}
	}

	return subtotal, nil
}

// ComputeTotals prices groups for method. Pickup groups cost nothing to ship;
// other methods are quoted per group, concurrently.
func (c *Calculator) ComputeTotals(ctx context.Context, groups domain.StoreGroups, method domain.ShippingMethod, cur currency.Unit) (Totals, error) {
	if !method.Enabled() {
		return Totals{}, fmt.Errorf("method[%s]: %w", method, domain.ErrMethodUnavailable)
	}

	subtotal, err := Subtotal(groups, cur)
	if err != nil {
		return Totals{}, fmt.Errorf("Subtotal: %w", err)
	}

	fees, err := c.quoteGroups(ctx, groups, method, cur)
	if err != nil {
		return Totals{}, err
	}

	shipping := domain.Zero(cur)
	for _, fee := range fees {
		shipping, err = shipping.Add(fee)
		if err != nil {
			return Totals{}, fmt.Errorf("shipping.Add: %w", err)
		}
	}

	total, err := subtotal.Add(shipping)
	if err != nil {
		return Totals{}, fmt.Errorf("subtotal.Add: %w", err)
	}

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: shipping,
		Total:       total,
		Fees:        fees,
	}, nil
}

func (c *Calculator) quoteGroups(ctx context.Context, groups domain.StoreGroups, method domain.ShippingMethod, cur currency.Unit) ([]domain.Money, error) {
	fees := make([]domain.Money, len(groups))

	if method == domain.ShippingPickUp {
		for i := range fees {
			fees[i] = domain.Zero(cur)
		}
		return fees, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	for i, group := range groups {
		g.Go(func() error {
			fee, err := c.quote(gctx, group, method)
			if err != nil {
				return err
			}

			if fee.Currency != cur {
				return fmt.Errorf("quote store[%s] in %s: %w", group.StoreID, fee.Currency, domain.ErrCurrencyMismatch)
			}
			if fee.IsNegative() {
				return fmt.Errorf("quote store[%s] is %s: %w", group.StoreID, fee, domain.ErrNegativeAmount)
			}

			fees[i] = fee
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return fees, nil
}

func (c *Calculator) quote(ctx context.Context, group domain.StoreGroup, method domain.ShippingMethod) (domain.Money, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fee, err := c.quoter.Quote(ctx, group, method)
	if err != nil {
		return domain.Money{}, domain.ExternalError(fmt.Sprintf("quoter.Quote store[%s]", group.StoreID), err)
	}

	return fee, nil
}
