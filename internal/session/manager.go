package session

import (
	"context"
	"sync"

	"github.com/Nixie-Tech-LLC/sakina/internal/cache"
	"github.com/Nixie-Tech-LLC/sakina/internal/model"
	"github.com/rs/zerolog/log"
)

// Manager holds one session per user and persists each change through the
// cache so a restart keeps the last location.
type Manager struct {
	mu       sync.Mutex
	sessions map[int]model.Session
	cache    *cache.Cache
}

func NewManager(c *cache.Cache) *Manager {
	return &Manager{
		sessions: make(map[int]model.Session),
		cache:    c,
	}
}

// Get returns the user's session, loading it from the cache on first use.
func (m *Manager) Get(ctx context.Context, userID int) model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.load(ctx, userID)
}

// Dispatch applies a to the user's session and returns the new state.
func (m *Manager) Dispatch(ctx context.Context, userID int, a Action) model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := Reduce(m.load(ctx, userID), a)
	m.sessions[userID] = next

	if m.cache != nil {
		if err := cache.Save(ctx, m.cache, cache.SessionKey(userID), next); err != nil {
			log.Warn().Err(err).Int("user_id", userID).Msg("failed to persist session")
		}
	}
	return next
}

// load must be called with mu held.
func (m *Manager) load(ctx context.Context, userID int) model.Session {
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := New()
	if m.cache != nil {
		if stored, ok := cache.Load[model.Session](ctx, m.cache, cache.SessionKey(userID)); ok {
			s = stored
			if s.Location == nil {
				loc := DefaultLocation
				s.Location = &loc
			}
		}
	}
	m.sessions[userID] = s
	return s
}
