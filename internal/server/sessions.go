package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-uigen/pkg/ast"
)

// Session holds the conversational state for one interface being built up
// across plan turns.
type Session struct {
	ID       string
	Document *ast.Document
	Code     string
	HTML     []byte
}

// SessionStore is an in-memory session map. Sessions live for the process
// lifetime; there is no eviction beyond Delete.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create registers a new session with a generated ID.
func (s *SessionStore) Create() Session {
	session := &Session{ID: uuid.NewString()}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return *session
}

// Get returns a snapshot of the session for id. Callers never see the stored
// struct, so reads cannot race a concurrent Update. Update replaces the
// Document pointer wholesale, so the snapshot's pointer stays consistent.
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *session, true
}

// Update stores the latest pipeline outcome on the session.
func (s *SessionStore) Update(id string, doc *ast.Document, code string, html []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok {
		session.Document = doc
		session.Code = code
		session.HTML = html
	}
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
