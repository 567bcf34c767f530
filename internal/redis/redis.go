// Package redis backs the offline cache with a Redis instance.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

const keyPrefix = "sakina:"

// InitRedis connects and pings the server.
func InitRedis(ctx context.Context, address, username, password string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     address,
		Username: username,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping %s: %w", address, err)
	}
	log.Info().Str("address", address).Msg("connected to redis")
	return rdb, nil
}

// Store keeps cache entries as JSON values with no expiration.
type Store struct {
	rdb *goredis.Client
}

func NewStore(rdb *goredis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Get(ctx context.Context, key string) (model.CacheEntry, bool, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return model.CacheEntry{}, false, nil
	}
	if err != nil {
		return model.CacheEntry{}, false, err
	}

	var entry model.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return model.CacheEntry{}, false, fmt.Errorf("decode entry %s: %w", key, err)
	}
	return entry, true, nil
}

func (s *Store) Put(ctx context.Context, entry model.CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, keyPrefix+entry.Key, raw, 0).Err(); err != nil {
		log.Error().Err(err).Str("key", entry.Key).Msg("failed to write entry to redis")
		return err
	}
	return nil
}
