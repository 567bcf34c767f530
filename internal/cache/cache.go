// Package cache is the offline-first gateway between request handlers and
// remote data sources. Entries never expire: keys carry their own scope.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// Store is a durable key -> payload store. Writes replace the whole value.
type Store interface {
	Get(ctx context.Context, key string) (model.CacheEntry, bool, error)
	Put(ctx context.Context, entry model.CacheEntry) error
}

// FetchFunc loads a payload from the network. Any error, including a
// non-success response, counts as a failed fetch.
type FetchFunc func(ctx context.Context) ([]byte, error)

type Cache struct {
	store Store
	now   func() time.Time
}

func New(store Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

// Get reads the store only. A store error is logged and treated as a miss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("cache read failed")
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return entry.Payload, true
}

func (c *Cache) Put(ctx context.Context, key string, payload []byte) error {
	return c.store.Put(ctx, model.CacheEntry{Key: key, Payload: payload, WrittenAt: c.now()})
}

// FetchWithCache returns the stored payload for key, or fetches, stores and
// returns it. A failed fetch yields (nil, false) and stores nothing, so the
// next call goes to the network again.
func (c *Cache) FetchWithCache(ctx context.Context, key string, fetch FetchFunc) ([]byte, bool) {
	dataset := datasetOf(key)

	if payload, ok := c.Get(ctx, key); ok {
		requests.WithLabelValues(dataset, "hit").Inc()
		return payload, true
	}

	log.Debug().Str("key", key).Msg("cache miss, fetching")
	payload, err := fetch(ctx)
	if err != nil {
		requests.WithLabelValues(dataset, "fetch_failed").Inc()
		log.Error().Err(err).Str("key", key).Msg("remote fetch failed")
		return nil, false
	}
	requests.WithLabelValues(dataset, "miss").Inc()

	if err := c.Put(ctx, key, payload); err != nil {
		// the caller still gets the fresh payload
		log.Error().Err(err).Str("key", key).Msg("cache write failed")
	}
	return payload, true
}

// Fetch is FetchWithCache with a JSON codec for T.
func Fetch[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, bool) {
	var zero T

	payload, ok := c.FetchWithCache(ctx, key, func(ctx context.Context) ([]byte, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
	if !ok {
		return zero, false
	}

	var out T
	if err := json.Unmarshal(payload, &out); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cached payload has an unexpected shape")
		return zero, false
	}
	return out, true
}

// Load reads and decodes a stored value without touching the network.
func Load[T any](ctx context.Context, c *Cache, key string) (T, bool) {
	var out T
	payload, ok := c.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		log.Error().Err(err).Str("key", key).Msg("cached payload has an unexpected shape")
		var zero T
		return zero, false
	}
	return out, true
}

// Save encodes v as JSON and overwrites key.
func Save[T any](ctx context.Context, c *Cache, key string, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Put(ctx, key, payload)
}
