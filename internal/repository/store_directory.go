package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartcheckout/internal/db"
	"github.com/nikolayk812/cartcheckout/internal/domain"
)

// StoreDirectory reads store reference data from the stores table.
type StoreDirectory struct {
	q *db.Queries
}

func NewStoreDirectory(pool *pgxpool.Pool) *StoreDirectory {
	return &StoreDirectory{q: db.New(pool)}
}

func (d *StoreDirectory) Lookup(ctx context.Context, storeID uuid.UUID) (domain.Store, error) {
	if storeID == uuid.Nil {
		return domain.Store{}, fmt.Errorf("storeID is empty")
	}

	row, err := d.q.GetStore(ctx, storeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Store{}, fmt.Errorf("store[%s]: %w", storeID, domain.ErrStoreNotFound)
	}
	if err != nil {
		return domain.Store{}, fmt.Errorf("q.GetStore: %w", err)
	}

	return mapStoreToDomain(row), nil
}

// Upsert inserts or replaces a store record.
func (d *StoreDirectory) Upsert(ctx context.Context, store domain.Store) error {
	if store.ID == uuid.Nil {
		return fmt.Errorf("storeID is empty")
	}

	params := db.UpsertStoreParams{
		ID:      store.ID,
		Name:    store.Name,
		Address: store.Address,
	}
	if store.Location != nil {
		lat, lng := store.Location.Latitude, store.Location.Longitude
		params.Latitude = &lat
		params.Longitude = &lng
	}

	if err := d.q.UpsertStore(ctx, params); err != nil {
		return fmt.Errorf("q.UpsertStore: %w", err)
	}

	return nil
}

func mapStoreToDomain(row db.Store) domain.Store {
	store := domain.Store{
		ID:      row.ID,
		Name:    row.Name,
		Address: row.Address,
	}

	if row.Latitude != nil && row.Longitude != nil {
		store.Location = &domain.Coordinates{
			Latitude:  *row.Latitude,
			Longitude: *row.Longitude,
		}
	}

	return store
}
