package pricing_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubQuoter struct {
	fees  map[uuid.UUID]domain.Money
	err   error
	block bool
	calls atomic.Int32
}

func (q *stubQuoter) Quote(ctx context.Context, group domain.StoreGroup, _ domain.ShippingMethod) (domain.Money, error) {
	q.calls.Add(1)

	if q.block {
		<-ctx.Done()
		return domain.Money{}, ctx.Err()
	}
	if q.err != nil {
		return domain.Money{}, q.err
	}
	return q.fees[group.StoreID], nil
}

func usd(amount int64) domain.Money {
	return domain.Money{Amount: amount, Currency: currency.USD}
}

func groupOf(prices ...int64) domain.StoreGroup {
	id := uuid.MustParse(gofakeit.UUID())
	g := domain.StoreGroup{StoreID: id}
	for _, p := range prices {
		g.Items = append(g.Items, domain.CartItem{
			ID:        uuid.MustParse(gofakeit.UUID()),
			StoreID:   id,
			UnitPrice: usd(p),
			Quantity:  1,
			Selected:  true,
		})
	}
	return g
}

func TestSubtotal(t *testing.T) {
	g := groupOf(10000)
	g.Items[0].Quantity = 2

	subtotal, err := pricing.Subtotal(domain.StoreGroups{g, groupOf(199, 1)}, currency.USD)
	require.NoError(t, err)
	assert.Equal(t, usd(20200), subtotal)

	empty, err := pricing.Subtotal(domain.StoreGroups{}, currency.USD)
	require.NoError(t, err)
	assert.Equal(t, usd(0), empty)
}

func TestSubtotal_CurrencyMismatch(t *testing.T) {
	g := groupOf(100)
	g.Items[0].UnitPrice.Currency = currency.EUR

	_, err := pricing.Subtotal(domain.StoreGroups{g}, currency.USD)
	require.ErrorIs(t, err, domain.ErrCurrencyMismatch)
}

func TestComputeTotals_DoorToDoor(t *testing.T) {
	g := groupOf(10000)
	g.Items[0].Quantity = 2

	q := &stubQuoter{fees: map[uuid.UUID]domain.Money{g.StoreID: usd(5000)}}
	calc := pricing.New(q, time.Second)

	totals, err := calc.ComputeTotals(t.Context(), domain.StoreGroups{g}, domain.ShippingDoorToDoor, currency.USD)
	require.NoError(t, err)

	assert.Equal(t, usd(20000), totals.Subtotal)
	assert.Equal(t, usd(5000), totals.ShippingFee)
	assert.Equal(t, usd(25000), totals.Total)
	assert.Equal(t, "250.00", totals.Total.Major())
	assert.Equal(t, []domain.Money{usd(5000)}, totals.Fees)
}

func TestComputeTotals_FeesFollowGroupOrder(t *testing.T) {
	groups := domain.StoreGroups{groupOf(100), groupOf(200), groupOf(300)}
	q := &stubQuoter{fees: map[uuid.UUID]domain.Money{
		groups[0].StoreID: usd(10),
		groups[1].StoreID: usd(20),
		groups[2].StoreID: usd(30),
	}}

	totals, err := pricing.New(q, time.Second).ComputeTotals(t.Context(), groups, domain.ShippingDoorToDoor, currency.USD)
	require.NoError(t, err)

	assert.Equal(t, []domain.Money{usd(10), usd(20), usd(30)}, totals.Fees)
	assert.Equal(t, usd(60), totals.ShippingFee)
	assert.Equal(t, usd(660), totals.Total)
	assert.Equal(t, int32(3), q.calls.Load())
}

func TestComputeTotals_PickupDoesNotQuote(t *testing.T) {
	q := &stubQuoter{err: errors.New("must not be called")}

	totals, err := pricing.New(q, time.Second).ComputeTotals(t.Context(), domain.StoreGroups{groupOf(4500)}, domain.ShippingPickUp, currency.USD)
	require.NoError(t, err)

	assert.Equal(t, usd(0), totals.ShippingFee)
	assert.Equal(t, totals.Subtotal, totals.Total)
	assert.Equal(t, int32(0), q.calls.Load())
}

func TestComputeTotals_Errors(t *testing.T) {
	tests := []struct {
		name    string
		quoter  *stubQuoter
		method  domain.ShippingMethod
		wantErr []error
	}{
		{
			name:    "ewallet disabled",
			quoter:  &stubQuoter{},
			method:  domain.ShippingEWallet,
			wantErr: []error{domain.ErrMethodUnavailable},
		},
		{
			name:    "rate service failure",
			quoter:  &stubQuoter{err: errors.New("503 from carrier")},
			method:  domain.ShippingDoorToDoor,
			wantErr: []error{domain.ErrExternalUnavailable},
		},
		{
			name:    "rate service timeout",
			quoter:  &stubQuoter{block: true},
			method:  domain.ShippingDoorToDoor,
			wantErr: []error{domain.ErrExternalUnavailable, context.DeadlineExceeded},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := pricing.New(tt.quoter, 20*time.Millisecond)

			_, err := calc.ComputeTotals(t.Context(), domain.StoreGroups{groupOf(100), groupOf(200)}, tt.method, currency.USD)
			for _, want := range tt.wantErr {
				require.ErrorIs(t, err, want)
			}
		})
	}
}

func TestComputeTotals_RejectsBadQuotes(t *testing.T) {
	g := groupOf(100)

	foreign := &stubQuoter{fees: map[uuid.UUID]domain.Money{g.StoreID: {Amount: 100, Currency: currency.EUR}}}
	_, err := pricing.New(foreign, time.Second).ComputeTotals(t.Context(), domain.StoreGroups{g}, domain.ShippingDoorToDoor, currency.USD)
	require.ErrorIs(t, err, domain.ErrCurrencyMismatch)

	negative := &stubQuoter{fees: map[uuid.UUID]domain.Money{g.StoreID: usd(-1)}}
	_, err = pricing.New(negative, time.Second).ComputeTotals(t.Context(), domain.StoreGroups{g}, domain.ShippingDoorToDoor, currency.USD)
	require.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestNew_NilQuoterPanics(t *testing.T) {
	assert.Panics(t, func() { pricing.New(nil, time.Second) })
}
