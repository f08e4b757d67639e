package session

import "sync"

// Store persists at most one session record. Load returns (nil, nil) when
// nothing usable is stored: absence and an unparseable record look the same
// to callers, a partially-typed session never escapes.
type Store interface {
	// Save overwrites the single stored record. Medium failures are
	// reported as ErrStorageUnavailable.
	Save(session *Session) error
	// Load returns the last saved record, or nil when absent.
	Load() (*Session, error)
	// Clear removes the record unconditionally. Idempotent.
	Clear() error
}

// MemoryStore keeps the session in process memory. Useful for tests and for
// embedders that manage persistence themselves.
type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session.clone()
	return nil
}

func (s *MemoryStore) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.complete() {
		return nil, nil
	}
	return s.session.clone(), nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}
