package fulfillment_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/fulfillment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func group(store *domain.Store) domain.StoreGroup {
	id := uuid.MustParse(gofakeit.UUID())
	if store != nil {
		id = store.ID
	}
	return domain.StoreGroup{
		StoreID: id,
		Store:   store,
		Items:   []domain.CartItem{{ID: uuid.MustParse(gofakeit.UUID()), StoreID: id, Quantity: 1, Selected: true}},
	}
}

func storeWithAddress() *domain.Store {
	return &domain.Store{ID: uuid.MustParse(gofakeit.UUID()), Name: gofakeit.Company(), Address: gofakeit.Address().Address}
}

func TestValidate(t *testing.T) {
	located := storeWithAddress()
	unlocated := &domain.Store{ID: uuid.MustParse(gofakeit.UUID()), Name: gofakeit.Company()}

	tests := []struct {
		name   string
		groups domain.StoreGroups
		method domain.ShippingMethod
		want   fulfillment.Result
	}{
		{
			name:   "door to door single store",
			groups: domain.StoreGroups{group(located)},
			method: domain.ShippingDoorToDoor,
			want:   fulfillment.Result{Valid: true},
		},
		{
			name:   "door to door many stores",
			groups: domain.StoreGroups{group(located), group(unlocated), group(nil)},
			method: domain.ShippingDoorToDoor,
			want:   fulfillment.Result{Valid: true},
		},
		{
			name:   "pickup single located store",
			groups: domain.StoreGroups{group(located)},
			method: domain.ShippingPickUp,
			want:   fulfillment.Result{Valid: true},
		},
		{
			name:   "pickup with coordinates only",
			groups: domain.StoreGroups{group(&domain.Store{ID: uuid.MustParse(gofakeit.UUID()), Location: &domain.Coordinates{Latitude: 14.55, Longitude: 121.02}})},
			method: domain.ShippingPickUp,
			want:   fulfillment.Result{Valid: true},
		},
		{
			name:   "no items",
			groups: domain.StoreGroups{},
			method: domain.ShippingDoorToDoor,
			want:   fulfillment.Result{Reason: domain.ReasonNoItemsSelected},
		},
		{
			name:   "no items beats disabled method",
			groups: nil,
			method: domain.ShippingEWallet,
			want:   fulfillment.Result{Reason: domain.ReasonNoItemsSelected},
		},
		{
			name:   "ewallet disabled",
			groups: domain.StoreGroups{group(located)},
			method: domain.ShippingEWallet,
			want:   fulfillment.Result{Reason: domain.ReasonMethodUnavailable},
		},
		{
			name:   "pickup two stores",
			groups: domain.StoreGroups{group(located), group(storeWithAddress())},
			method: domain.ShippingPickUp,
			want:   fulfillment.Result{Reason: domain.ReasonMultipleStoresForPickup},
		},
		{
			name:   "multiple stores beats missing location",
			groups: domain.StoreGroups{group(unlocated), group(nil)},
			method: domain.ShippingPickUp,
			want:   fulfillment.Result{Reason: domain.ReasonMultipleStoresForPickup},
		},
		{
			name:   "pickup store without location",
			groups: domain.StoreGroups{group(unlocated)},
			method: domain.ShippingPickUp,
			want:   fulfillment.Result{Reason: domain.ReasonStoreLocationUnavailable},
		},
		{
			name:   "pickup unknown store",
			groups: domain.StoreGroups{group(nil)},
			method: domain.ShippingPickUp,
			want:   fulfillment.Result{Reason: domain.ReasonStoreLocationUnavailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fulfillment.Validate(tt.groups, tt.method)
			assert.Equal(t, tt.want, got)

			if got.Valid {
				require.NoError(t, got.Err())
			} else {
				require.ErrorIs(t, got.Err(), domain.ErrValidationFailure)
				require.ErrorIs(t, got.Err(), tt.want.Reason.Err())
			}
		})
	}
}
