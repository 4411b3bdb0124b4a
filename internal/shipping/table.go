// Package shipping provides rate quoters for store groups.
package shipping

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Table quotes a flat fee per store, falling back to a default fee.
// Pickup is free.
type Table struct {
	defaultFee domain.Money
	fees       map[uuid.UUID]domain.Money
}

var _ port.RateQuoter = (*Table)(nil)

// NewTable builds a Table from major-unit fees such as 49.00.
func NewTable(cur currency.Unit, defaultFee decimal.Decimal, perStore map[uuid.UUID]decimal.Decimal) (*Table, error) {
	def, err := domain.FromDecimal(defaultFee, cur)
	if err != nil {
		return nil, fmt.Errorf("default fee: %w", err)
	}
	if def.IsNegative() {
		return nil, fmt.Errorf("default fee %s: %w", def, domain.ErrNegativeAmount)
	}

	fees := make(map[uuid.UUID]domain.Money, len(perStore))
	for storeID, d := range perStore {
		fee, err := domain.FromDecimal(d, cur)
		if err != nil {
			return nil, fmt.Errorf("store[%s] fee: %w", storeID, err)
		}
		if fee.IsNegative() {
			return nil, fmt.Errorf("store[%s] fee %s: %w", storeID, fee, domain.ErrNegativeAmount)
		}
		fees[storeID] = fee
	}

	return &Table{defaultFee: def, fees: fees}, nil
}

func (t *Table) Quote(ctx context.Context, group domain.StoreGroup, method domain.ShippingMethod) (domain.Money, error) {
	if err := ctx.Err(); err != nil {
		return domain.Money{}, err
	}

	switch method {
	case domain.ShippingPickUp:
		return domain.Zero(t.defaultFee.Currency), nil
	case domain.ShippingDoorToDoor:
		if fee, ok := t.fees[group.StoreID]; ok {
			return fee, nil
		}
		return t.defaultFee, nil
	default:
		return domain.Money{}, fmt.Errorf("method[%s]: %w", method, domain.ErrMethodUnavailable)
	}
}
