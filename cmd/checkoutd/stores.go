package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/port"
)

type storeRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// loadStores reads a JSON array of store records.
func loadStores(path string) ([]domain.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %w", err)
	}

	var records []storeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	stores := make([]domain.Store, 0, len(records))
	for i, r := range records {
		store, err := mapStoreRecord(r)
		if err != nil {
			return nil, fmt.Errorf("stores[%d]: %w", i, err)
		}
		stores = append(stores, store)
	}

	return stores, nil
}

func mapStoreRecord(r storeRecord) (domain.Store, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Store{}, fmt.Errorf("id: %w", err)
	}
	if r.Name == "" {
		return domain.Store{}, fmt.Errorf("store[%s] name is empty", id)
	}

	store := domain.Store{ID: id, Name: r.Name, Address: r.Address}

	switch {
	case r.Latitude == nil && r.Longitude == nil:
	case r.Latitude == nil || r.Longitude == nil:
		return domain.Store{}, fmt.Errorf("store[%s] needs both latitude and longitude", id)
	default:
		loc := domain.Coordinates{Latitude: *r.Latitude, Longitude: *r.Longitude}
		if !loc.Valid() {
			return domain.Store{}, fmt.Errorf("store[%s] coordinates out of range", id)
		}
		store.Location = &loc
	}

	return store, nil
}

func seedStores(ctx context.Context, w port.StoreWriter, stores []domain.Store) error {
	for _, s := range stores {
		if err := w.Upsert(ctx, s); err != nil {
			return fmt.Errorf("store[%s] upsert: %w", s.ID, err)
		}
	}
	return nil
}
