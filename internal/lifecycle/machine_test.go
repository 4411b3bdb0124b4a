package lifecycle_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func randomOrder(status domain.OrderStatus) domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:         uuid.MustParse(gofakeit.UUID()),
		CheckoutID: uuid.MustParse(gofakeit.UUID()),
		Items: []domain.LineItem{{
			ItemID:    uuid.MustParse(gofakeit.UUID()),
			StoreID:   uuid.MustParse(gofakeit.UUID()),
			UnitPrice: domain.Money{Amount: 10000, Currency: currency.USD},
			Quantity:  2,
		}},
		Method:      domain.ShippingDoorToDoor,
		Subtotal:    domain.Money{Amount: 20000, Currency: currency.USD},
		ShippingFee: domain.Money{Amount: 5000, Currency: currency.USD},
		Total:       domain.Money{Amount: 25000, Currency: currency.USD},
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestNext(t *testing.T) {
	tests := []struct {
		from    domain.OrderStatus
		event   lifecycle.Event
		want    domain.OrderStatus
		wantErr bool
	}{
		{from: domain.OrderStatusCreated, event: lifecycle.EventConfirmPlacement, want: domain.OrderStatusProcessing},
		{from: domain.OrderStatusCreated, event: lifecycle.EventRequestCancellation, want: domain.OrderStatusCancelled},
		{from: domain.OrderStatusCreated, event: lifecycle.EventMarkDelivered, wantErr: true},

		{from: domain.OrderStatusProcessing, event: lifecycle.EventMarkDelivered, want: domain.OrderStatusDelivered},
		{from: domain.OrderStatusProcessing, event: lifecycle.EventRequestCancellation, want: domain.OrderStatusCancelled},
		{from: domain.OrderStatusProcessing, event: lifecycle.EventConfirmPlacement, wantErr: true},

		{from: domain.OrderStatusDelivered, event: lifecycle.EventConfirmPlacement, wantErr: true},
		{from: domain.OrderStatusDelivered, event: lifecycle.EventMarkDelivered, wantErr: true},
		{from: domain.OrderStatusDelivered, event: lifecycle.EventRequestCancellation, wantErr: true},

		{from: domain.OrderStatusCancelled, event: lifecycle.EventConfirmPlacement, wantErr: true},
		{from: domain.OrderStatusCancelled, event: lifecycle.EventMarkDelivered, wantErr: true},
		{from: domain.OrderStatusCancelled, event: lifecycle.EventRequestCancellation, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" "+string(tt.event), func(t *testing.T) {
			got, err := lifecycle.Next(randomOrder(tt.from), tt.event)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNext_ConfirmGuards(t *testing.T) {
	empty := randomOrder(domain.OrderStatusCreated)
	empty.Items = nil

	_, err := lifecycle.Next(empty, lifecycle.EventConfirmPlacement)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	free := randomOrder(domain.OrderStatusCreated)
	free.Total = domain.Zero(currency.USD)

	_, err = lifecycle.Next(free, lifecycle.EventConfirmPlacement)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApply(t *testing.T) {
	at := time.Now().UTC().Add(time.Minute)

	order := randomOrder(domain.OrderStatusProcessing)
	require.NoError(t, lifecycle.Apply(&order, lifecycle.EventRequestCancellation, at))

	assert.Equal(t, domain.OrderStatusCancelled, order.Status)
	assert.Equal(t, at, order.UpdatedAt)
	require.NotNil(t, order.CancelledAt)
	assert.Equal(t, at, *order.CancelledAt)
	assert.Nil(t, order.DeliveredAt)

	// rejected transitions leave the order untouched
	before := order.Clone()
	err := lifecycle.Apply(&order, lifecycle.EventMarkDelivered, at.Add(time.Hour))
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, before, order)
}

func TestConfirmation(t *testing.T) {
	var zero lifecycle.Confirmation
	assert.True(t, zero.IsZero())

	id := uuid.MustParse(gofakeit.UUID())
	at := time.Now().UTC()

	c := lifecycle.ConfirmCancellation(id, at)
	assert.False(t, c.IsZero())
	assert.Equal(t, id, c.OrderID())
	assert.Equal(t, at, c.ConfirmedAt())
}
