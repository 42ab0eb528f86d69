// README: In-memory session store with per-key serialization of updates.
package session

import (
	"sync"
)

type entry struct {
	mu   sync.Mutex
	sess Session
}

// Store keeps sessions for the process lifetime. Updates for one key are serialized;
// different keys only share the short map lookup.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

func (s *Store) entry(key string) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[key]
	if !ok {
		e = &entry{sess: newSession(key)}
		s.sessions[key] = e
	}
	return e
}

// GetOrCreate returns a snapshot of the session, creating a default one for unseen keys.
func (s *Store) GetOrCreate(key string) Session {
	e := s.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess
}

// Lookup returns a snapshot of an existing session. Unseen keys are not created.
func (s *Store) Lookup(key string) (Session, bool) {
	s.mu.Lock()
	e, ok := s.sessions[key]
	s.mu.Unlock()
	if !ok {
		return Session{}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sess, true
}

// Update runs fn on a copy of the session while holding the key's lock.
// The copy replaces the stored session only when fn returns nil.
func (s *Store) Update(key string, fn func(*Session) error) (Session, error) {
	e := s.entry(key)
	e.mu.Lock()
	defer e.mu.Unlock()

	working := e.sess
	if err := fn(&working); err != nil {
		return e.sess, err
	}
	working.Key = key
	e.sess = working
	return working, nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
