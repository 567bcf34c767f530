package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

func (p *pgStore) GetCacheEntry(ctx context.Context, key string) (model.CacheEntry, bool, error) {
	var e model.CacheEntry
	err := p.db.GetContext(ctx, &e, `SELECT key, payload, written_at FROM cache_entries WHERE key = $1;`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return model.CacheEntry{}, false, nil
	}
	if err != nil {
		return model.CacheEntry{}, false, err
	}
	return e, true, nil
}

// whole-value replacement, never a merge.
func (p *pgStore) PutCacheEntry(ctx context.Context, e model.CacheEntry) error {
	const q = `
	INSERT INTO cache_entries (key, payload, written_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, written_at = EXCLUDED.written_at;`
	if _, err := p.db.ExecContext(ctx, q, e.Key, e.Payload, e.WrittenAt); err != nil {
		log.Error().Err(err).Str("key", e.Key).Msg("PutCacheEntry failed")
		return err
	}
	return nil
}

// CacheStore adapts a Store to the offline cache's Store interface.
type CacheStore struct {
	store Store
}

func NewCacheStore(store Store) *CacheStore {
	return &CacheStore{store: store}
}

func (c *CacheStore) Get(ctx context.Context, key string) (model.CacheEntry, bool, error) {
	return c.store.GetCacheEntry(ctx, key)
}

func (c *CacheStore) Put(ctx context.Context, entry model.CacheEntry) error {
	return c.store.PutCacheEntry(ctx, entry)
}
