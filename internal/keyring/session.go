package keyring

import (
	"fmt"
	"sync"
)

// Event describes a session state change delivered to observers.
type Event string

const (
	EventOpened Event = "opened"
	EventClosed Event = "closed"
)

// Observer receives session state changes. Replaces the ambient
// module-level singleton with subscriber callbacks: anything interested in
// the session subscribes on the Session value it was handed.
type Observer interface {
	SessionChanged(event Event, identity string)
}

// Session carries the acting identity through the pipeline and CLI.
// It does not cache the KEK: key material exists only for the duration of
// the operation that derives it.
type Session struct {
	mu        sync.RWMutex
	identity  string
	observers []Observer
}

// NewSession returns a locked session with no identity.
func NewSession() *Session {
	return &Session{}
}

// Subscribe registers an observer for subsequent state changes.
func (s *Session) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Open binds the session to an identity. The identity is validated by a
// throwaway KEK derivation so a malformed identity fails here rather than
// mid-upload.
func (s *Session) Open(identity string) error {
	id := NormalizeIdentity(identity)
	if _, err := DeriveKEK(id); err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	s.mu.Lock()
	s.identity = id
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		o.SessionChanged(EventOpened, id)
	}
	return nil
}

// Close clears the bound identity.
func (s *Session) Close() {
	s.mu.Lock()
	id := s.identity
	s.identity = ""
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	if id == "" {
		return
	}
	for _, o := range observers {
		o.SessionChanged(EventClosed, id)
	}
}

// Identity returns the bound identity, empty if the session is not open.
func (s *Session) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// IsOpen reports whether an identity is bound.
func (s *Session) IsOpen() bool {
	return s.Identity() != ""
}

// DeriveKEK derives the KEK for the bound identity. The result is handed to
// the caller and forgotten; the session keeps no key bytes.
func (s *Session) DeriveKEK() ([]byte, error) {
	return DeriveKEK(s.Identity())
}
