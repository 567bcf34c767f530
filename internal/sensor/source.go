// Package sensor delivers raw device orientation events to subscribers.
package sensor

import (
	"errors"
	"sync"

	"github.com/Nixie-Tech-LLC/sakina/internal/model"
)

// ErrUnsupported means the device exposes no orientation capability. It is an
// expected state, callers report it instead of failing.
var ErrUnsupported = errors.New("sensor: orientation not supported")

// Handler is called once per orientation event. It must not block.
type Handler func(model.RawOrientation)

// Unsubscribe releases a subscription. Calling it more than once is safe.
type Unsubscribe func()

// Source is a push-based stream of orientation events.
type Source interface {
	Subscribe(h Handler) (Unsubscribe, error)
}

// PushSource is an in-process Source fed by Push. It backs the HTTP sample
// endpoint for clients that do not speak MQTT.
type PushSource struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	next     int
	disabled bool
}

func NewPushSource() *PushSource {
	return &PushSource{handlers: make(map[int]Handler)}
}

// Disable makes later Subscribe calls report ErrUnsupported.
func (s *PushSource) Disable() {
	s.mu.Lock()
	s.disabled = true
	s.mu.Unlock()
}

func (s *PushSource) Subscribe(h Handler) (Unsubscribe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disabled {
		return nil, ErrUnsupported
	}

	id := s.next
	s.next++
	s.handlers[id] = h

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.handlers, id)
			s.mu.Unlock()
		})
	}, nil
}

// Push delivers r to every current subscriber and reports how many received it.
func (s *PushSource) Push(r model.RawOrientation) int {
	s.mu.RLock()
	hs := make([]Handler, 0, len(s.handlers))
	for _, h := range s.handlers {
		hs = append(hs, h)
	}
	s.mu.RUnlock()

	for _, h := range hs {
		h(r)
	}
	return len(hs)
}
