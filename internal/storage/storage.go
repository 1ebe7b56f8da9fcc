package storage

import (
	"sync"
	"time"

	"github.com/mcm-tools/figuregen/internal/session"
)

type entry struct {
	controller *session.Controller
	lastSeen   time.Time
}

// SessionStore keeps one generation controller per browser session
type SessionStore struct {
	sessions map[string]*entry
	mu       sync.Mutex
	now      func() time.Time
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Get returns the controller for sessionID and marks the session as used
func (s *SessionStore) Get(sessionID string) (*session.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.controller, true
}

// GetOrCreate returns the controller for sessionID, creating it with newController if absent
func (s *SessionStore) GetOrCreate(sessionID string, newController func() *session.Controller) (*session.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[sessionID]; ok {
		e.lastSeen = s.now()
		return e.controller, false
	}
	controller := newController()
	s.sessions[sessionID] = &entry{controller: controller, lastSeen: s.now()}
	return controller, true
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Prune removes sessions not used since cutoff. Sessions with a generation
// in flight are kept. It returns the ids removed.
func (s *SessionStore) Prune(cutoff time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for id, e := range s.sessions {
		if !e.lastSeen.Before(cutoff) || e.controller.State().Busy != "" {
			continue
		}
		delete(s.sessions, id)
		removed = append(removed, id)
	}
	return removed
}
