// Package sessionstore keeps translation sessions in process memory.
// Sessions are transient by contract: a restart forgets everything, and an
// idle session eventually ages out.
package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/docglot/docglot/internal/core/translation_engine"
)

// Memory implements translation_engine.Store. The newest Put owns the
// current slot; superseded sessions stay readable by ID until the janitor
// evicts them.
type Memory struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*translation_engine.Session
	current  string
	log      zerolog.Logger
}

var _ translation_engine.Store = (*Memory)(nil)

func NewMemory(ttl time.Duration, log zerolog.Logger) *Memory {
	return &Memory{
		ttl:      ttl,
		sessions: make(map[string]*translation_engine.Session),
		log:      log,
	}
}

func (m *Memory) Put(s *translation_engine.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	m.current = s.ID()
}

func (m *Memory) Get(id string) (*translation_engine.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Current returns the latest stored session, if any.
func (m *Memory) Current() (*translation_engine.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[m.current]
	return s, ok
}

// StartJanitor runs periodic eviction until ctx is cancelled. A zero or
// negative TTL disables eviction entirely.
func (m *Memory) StartJanitor(ctx context.Context) {
	if m.ttl <= 0 {
		return
	}
	every := m.ttl / 4
	if every < time.Second {
		every = time.Second
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.sweep(time.Now()); n > 0 {
					m.log.Debug().Int("evicted", n).Msg("session store swept")
				}
			}
		}
	}()
}

// sweep drops every session idle longer than the TTL. An active stream keeps
// bumping its session's UpdatedAt, so in-flight work survives.
func (m *Memory) sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, s := range m.sessions {
		if now.Sub(s.UpdatedAt()) > m.ttl {
			delete(m.sessions, id)
			if m.current == id {
				m.current = ""
			}
			evicted++
		}
	}
	return evicted
}

// Len reports how many sessions are currently held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
