package db

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") != "" {
		if err := InitTestDB("../../migrations"); err != nil {
			fmt.Fprintf(os.Stderr, "test database: %v\n", err)
			os.Exit(1)
		}
	}
	os.Exit(m.Run())
}

func requireDB(t *testing.T) Store {
	t.Helper()
	if TestStore == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return TestStore
}

func seedUser(t *testing.T, store Store) int {
	t.Helper()
	email := fmt.Sprintf("user-%d@example.com", time.Now().UnixNano())
	id, err := store.CreateUser(email, "hash", nil)
	require.NoError(t, err)
	return id
}

func TestRunMigrationsWithMissingPath(t *testing.T) {
	// zero *.up.sql files is not an error
	assert.NoError(t, RunMigrations("./does-not-exist"))
}

func TestBookmarks(t *testing.T) {
	store := requireDB(t)
	userID := seedUser(t, store)

	b, err := store.GetBookmark(userID)
	require.NoError(t, err)
	assert.Nil(t, b)

	_, err = store.SetBookmark(userID, 605)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	set, err := store.SetBookmark(userID, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, set.Page)

	set, err = store.SetBookmark(userID, 77)
	require.NoError(t, err)
	assert.Equal(t, 77, set.Page)

	require.NoError(t, store.ClearBookmark(userID))
	b, err = store.GetBookmark(userID)
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestAdhanSettings(t *testing.T) {
	store := requireDB(t)
	userID := seedUser(t, store)

	s, err := store.GetAdhanSettings(userID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAdhanSettings(userID), s)

	s.Voice = "aqsa"
	s.Isha = false
	require.NoError(t, store.SaveAdhanSettings(s))

	got, err := store.GetAdhanSettings(userID)
	require.NoError(t, err)
	assert.Equal(t, "aqsa", got.Voice)
	assert.False(t, got.Isha)
	assert.True(t, got.Fajr)

	s.Voice = "nowhere"
	assert.Error(t, store.SaveAdhanSettings(s))
}

func TestCacheEntries(t *testing.T) {
	store := NewCacheStore(requireDB(t))
	ctx := context.Background()
	key := fmt.Sprintf("test_%d", time.Now().UnixNano())

	_, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put(ctx, model.CacheEntry{Key: key, Payload: []byte("one"), WrittenAt: time.Now()}))
	require.NoError(t, store.Put(ctx, model.CacheEntry{Key: key, Payload: []byte("two"), WrittenAt: time.Now()}))

	e, ok, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("two"), e.Payload)
}
