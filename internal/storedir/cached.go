// Package storedir caches store reference data in Redis in front of a slower directory.
package storedir

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/cartcheckout/internal/domain"
	"github.com/nikolayk812/cartcheckout/internal/port"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultTTL = 15 * time.Minute

// Cached is a read-through cache. Stores are immutable reference data, so
// entries are only refreshed by expiry. Redis failures fall back to the
// backing directory.
type Cached struct {
	client  *redis.Client
	next    port.StoreDirectory
	baseTTL time.Duration
	logger  *zap.Logger
}

var _ port.StoreDirectory = (*Cached)(nil)

func NewCached(client *redis.Client, next port.StoreDirectory, ttl time.Duration, logger *zap.Logger) *Cached {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{
		client:  client,
		next:    next,
		baseTTL: ttl,
		logger:  logger,
	}
}

type cachedStore struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

func (c *Cached) Lookup(ctx context.Context, storeID uuid.UUID) (domain.Store, error) {
	store, err := c.get(ctx, storeID)
	if err == nil {
		return store, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.Warn("store cache read failed", zap.Stringer("store_id", storeID), zap.Error(err))
	}

	store, err = c.next.Lookup(ctx, storeID)
	if err != nil {
		return domain.Store{}, fmt.Errorf("next.Lookup: %w", err)
	}

	if err := c.set(ctx, store); err != nil {
		c.logger.Warn("store cache write failed", zap.Stringer("store_id", storeID), zap.Error(err))
	}

	return store, nil
}

func (c *Cached) get(ctx context.Context, storeID uuid.UUID) (domain.Store, error) {
	data, err := c.client.Get(ctx, cacheKey(storeID)).Bytes()
	if err != nil {
		return domain.Store{}, err
	}

	var cs cachedStore
	if err := json.Unmarshal(data, &cs); err != nil {
		return domain.Store{}, fmt.Errorf("unmarshal store failed: %w", err)
	}

	store := domain.Store{
		ID:      cs.ID,
		Name:    cs.Name,
		Address: cs.Address,
	}
	if cs.Latitude != nil && cs.Longitude != nil {
		store.Location = &domain.Coordinates{Latitude: *cs.Latitude, Longitude: *cs.Longitude}
	}

	return store, nil
}

func (c *Cached) set(ctx context.Context, store domain.Store) error {
	cs := cachedStore{
		ID:      store.ID,
		Name:    store.Name,
		Address: store.Address,
	}
	if store.Location != nil {
		lat, lng := store.Location.Latitude, store.Location.Longitude
		cs.Latitude, cs.Longitude = &lat, &lng
	}

	data, err := json.Marshal(cs)
	if err != nil {
		return fmt.Errorf("marshal store failed: %w", err)
	}

	jitter := time.Duration(rand.IntN(5)) * time.Minute
	if err := c.client.Set(ctx, cacheKey(store.ID), data, c.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func cacheKey(storeID uuid.UUID) string {
	return fmt.Sprintf("store:%s", storeID)
}
