package session

import (
	"log/slog"
	"sync"
	"time"

	"festbot/app/util/textnorm"

	"github.com/google/uuid"
	"github.com/samber/do"
)

// Service manages conversation contexts, one per active session.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]*Context
}

func New(_ *do.Injector) (*Service, error) {
	return &Service{
		sessions: make(map[string]*Context),
	}, nil
}

// Acquire returns the context for id, creating it on the first turn.
// An empty id starts a fresh session with a generated id. A session
// belongs to one guest: presenting an existing id with a different
// guest name starts a fresh session instead of taking over the old one.
func (s *Service) Acquire(id, guest string) *Context {
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx, ok := s.sessions[id]; ok {
		if textnorm.Normalize(ctx.Guest) == textnorm.Normalize(guest) {
			return ctx
		}

		slog.Warn("Session guest mismatch, starting a new session",
			"session_id", id,
			"session_guest", ctx.Guest,
			"guest", guest)

		id = uuid.NewString()
	}

	ctx := &Context{
		ID:        id,
		Guest:     guest,
		CreatedAt: time.Now(),
	}
	s.sessions[id] = ctx

	return ctx
}

// Lookup returns an existing context, or nil when the session is unknown.
func (s *Service) Lookup(id string) *Context {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sessions[id]
}

// Clear empties a session's transcript and referent list. The session id
// stays valid for further turns.
func (s *Service) Clear(id string) bool {
	s.mu.RLock()
	ctx, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return false
	}

	ctx.reset()

	return true
}
