package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/sakina/internal/cache"
	"github.com/Nixie-Tech-LLC/sakina/internal/config"
	"github.com/Nixie-Tech-LLC/sakina/internal/db"
	"github.com/Nixie-Tech-LLC/sakina/internal/redis"
	"github.com/Nixie-Tech-LLC/sakina/internal/shell"
	"github.com/Nixie-Tech-LLC/sakina/internal/storage"
)

// InitCacheStore selects the offline cache backend.
func InitCacheStore(ctx context.Context, cfg *config.Config, store db.Store) cache.Store {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		rdb, err := redis.InitRedis(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize redis cache")
		}
		log.Info().Str("address", cfg.RedisAddress).Msg("using redis cache")
		return redis.NewStore(rdb)
	case config.CachePostgres:
		log.Info().Msg("using postgres cache")
		return db.NewCacheStore(store)
	default:
		log.Info().Msg("using in-memory cache")
		return cache.NewMemoryStore()
	}
}

// InitShellStorage selects where the asset shell keeps its stores.
func InitShellStorage(cfg *config.Config) storage.Storage {
	if cfg.UseSpaces {
		spaces, err := storage.NewSpacesStorage(
			cfg.SpacesEndpoint,
			cfg.SpacesRegion,
			cfg.SpacesBucket,
			cfg.SpacesAccessKey,
			cfg.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("bucket", cfg.SpacesBucket).Msg("using DigitalOcean Spaces for shell stores")
		return spaces
	}

	log.Info().Str("dir", cfg.ShellCacheDir).Msg("using local shell stores")
	return storage.NewLocalStorage(cfg.ShellCacheDir)
}

// InitShell installs the current shell version and drops older stores. A
// failed install is logged and retried on the next start.
func InitShell(ctx context.Context, cfg *config.Config) *shell.Shell {
	var origin shell.Fetcher
	if cfg.ShellOrigin != "" {
		origin = shell.NewHTTPOrigin(cfg.ShellOrigin, 10*time.Second)
	} else {
		origin = shell.NewDirOrigin(cfg.ShellRoot)
	}

	s := shell.New(InitShellStorage(cfg), origin, cfg.ShellVersion)
	if err := s.Install(ctx); err != nil {
		log.Error().Err(err).Msg("shell install failed, serving from origin only")
		return s
	}
	if err := s.Activate(ctx); err != nil {
		log.Error().Err(err).Msg("shell activate failed")
	}
	return s
}
