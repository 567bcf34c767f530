package db

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// DB is the shared Postgres handle, set by Init.
var DB *sqlx.DB

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

// Init connects to Postgres, waiting for the server to accept connections
// for up to connectAttempts tries.
func Init(databaseURL string) error {
	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if DB, err = sqlx.Connect("postgres", databaseURL); err == nil {
			log.Info().Int("attempt", attempt).Msg("postgres ready")
			return nil
		}
		log.Warn().Err(err).Int("attempt", attempt).Dur("backoff", connectBackoff).Msg("postgres not reachable yet")
		time.Sleep(connectBackoff)
	}
	return fmt.Errorf("postgres unreachable after %d attempts: %w", connectAttempts, err)
}

// RunMigrations applies every *.up.sql file under dir in lexical order.
// The scripts create with IF NOT EXISTS, so applying them on every start is
// safe. Down scripts are never run here.
func RunMigrations(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return fmt.Errorf("list migrations in %s: %w", dir, err)
	}
	sort.Strings(files)

	for _, file := range files {
		if err := applyMigration(file); err != nil {
			log.Error().Err(err).Str("file", filepath.Base(file)).Msg("migration failed")
			return err
		}
	}
	log.Info().Int("count", len(files)).Str("dir", dir).Msg("migrations applied")
	return nil
}

func applyMigration(file string) error {
	script, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read migration %s: %w", file, err)
	}
	if strings.TrimSpace(string(script)) == "" {
		return nil
	}
	if _, err := DB.Exec(string(script)); err != nil {
		return fmt.Errorf("apply migration %s: %w", file, err)
	}
	return nil
}
