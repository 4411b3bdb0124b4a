package shipping_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/shipping"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestTable_Quote(t *testing.T) {
	special := uuid.MustParse(gofakeit.UUID())

	table, err := shipping.NewTable(currency.USD, decimal.RequireFromString("49.00"), map[uuid.UUID]decimal.Decimal{
		special: decimal.RequireFromString("15.50"),
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		storeID uuid.UUID
		method  domain.ShippingMethod
		want    domain.Money
		wantErr error
	}{
		{
			name:    "door to door default fee: ok",
			storeID: uuid.MustParse(gofakeit.UUID()),
			method:  domain.ShippingDoorToDoor,
			want:    domain.Money{Amount: 4900, Currency: currency.USD},
		},
		{
			name:    "door to door store fee: ok",
			storeID: special,
			method:  domain.ShippingDoorToDoor,
			want:    domain.Money{Amount: 1550, Currency: currency.USD},
		},
		{
			name:    "pick up is free: ok",
			storeID: special,
			method:  domain.ShippingPickUp,
			want:    domain.Money{Amount: 0, Currency: currency.USD},
		},
		{
			name:    "ewallet: error",
			storeID: special,
			method:  domain.ShippingEWallet,
			wantErr: domain.ErrMethodUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fee, err := table.Quote(t.Context(), domain.StoreGroup{StoreID: tt.storeID}, tt.method)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, fee)
		})
	}
}

func TestNewTable_Errors(t *testing.T) {
	_, err := shipping.NewTable(currency.USD, decimal.RequireFromString("1.005"), nil)
	require.Error(t, err)

	_, err = shipping.NewTable(currency.USD, decimal.RequireFromString("-1"), nil)
	require.ErrorIs(t, err, domain.ErrNegativeAmount)

	_, err = shipping.NewTable(currency.USD, decimal.Zero, map[uuid.UUID]decimal.Decimal{
		uuid.MustParse(gofakeit.UUID()): decimal.RequireFromString("-0.01"),
	})
	require.ErrorIs(t, err, domain.ErrNegativeAmount)
}

type failingQuoter struct {
	err   error
	calls int
}

func (q *failingQuoter) Quote(context.Context, domain.StoreGroup, domain.ShippingMethod) (domain.Money, error) {
	q.calls++
	return domain.Money{}, q.err
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	next := &failingQuoter{err: errors.New("connection refused")}
	b := shipping.NewBreaker(next, shipping.BreakerConfig{
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Hour,
	}, nil)

	group := domain.StoreGroup{StoreID: uuid.MustParse(gofakeit.UUID())}

	for range 2 {
		_, err := b.Quote(t.Context(), group, domain.ShippingDoorToDoor)
		require.EqualError(t, err, "connection refused")
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Quote(t.Context(), group, domain.ShippingDoorToDoor)
	require.ErrorIs(t, err, domain.ErrExternalUnavailable)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, next.calls, "open breaker must not call the rate service")
}

func TestBreaker_MethodUnavailableDoesNotTrip(t *testing.T) {
	next := &failingQuoter{err: domain.ErrMethodUnavailable}
	b := shipping.NewBreaker(next, shipping.BreakerConfig{ConsecutiveFailures: 1}, nil)

	for range 3 {
		_, err := b.Quote(t.Context(), domain.StoreGroup{}, domain.ShippingEWallet)
		require.ErrorIs(t, err, domain.ErrMethodUnavailable)
	}
	assert.Equal(t, gobreaker.StateClosed, b.State())
	assert.Equal(t, 3, next.calls)
}

func TestBreaker_PassesQuotesThrough(t *testing.T) {
	table, err := shipping.NewTable(currency.USD, decimal.RequireFromString("7.25"), nil)
	require.NoError(t, err)

	b := shipping.NewBreaker(table, shipping.BreakerConfig{}, nil)

	fee, err := b.Quote(t.Context(), domain.StoreGroup{}, domain.ShippingDoorToDoor)
	require.NoError(t, err)
	assert.Equal(t, domain.Money{Amount: 725, Currency: currency.USD}, fee)
}
