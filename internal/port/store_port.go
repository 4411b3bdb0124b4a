package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
)

// StoreDirectory returns domain.ErrStoreNotFound for unknown stores.
type StoreDirectory interface {
	Lookup(ctx context.Context, storeID uuid.UUID) (domain.Store, error)
}

// StoreWriter maintains the store records a StoreDirectory serves.
type StoreWriter interface {
	Upsert(ctx context.Context, store domain.Store) error
}

// RateQuoter quotes the shipping fee of one store group.
type RateQuoter interface {
	Quote(ctx context.Context, group domain.StoreGroup, method domain.ShippingMethod) (domain.Money, error)
}
