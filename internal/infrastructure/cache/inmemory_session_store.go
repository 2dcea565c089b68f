package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tindahan/backend/internal/domain/checkout"
)

// sessionEntry holds a stored session with its expiration
type sessionEntry struct {
	session   *checkout.Session
	expiresAt time.Time
}

// InMemorySessionStore implements checkout.SessionStore using an in-memory map.
// Suitable for single-instance deployments and testing. Every read or write
// slides the entry's expiration forward by the configured TTL.
type InMemorySessionStore struct {
	mu        sync.RWMutex
	ttl       time.Duration
	entries   map[string]sessionEntry
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySessionStore creates a new in-memory session store.
// It starts a background goroutine to clean up expired entries.
func NewInMemorySessionStore(ttl time.Duration) *InMemorySessionStore {
	store := &InMemorySessionStore{
		ttl:      ttl,
		entries:  make(map[string]sessionEntry),
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

func sessionKey(websiteID uuid.UUID, sessionID string) string {
	return websiteID.String() + ":" + sessionID
}

// Get returns the stored session, or (nil, nil) if absent or expired
func (s *InMemorySessionStore) Get(_ context.Context, websiteID uuid.UUID, sessionID string) (*checkout.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey(websiteID, sessionID)
	e, exists := s.entries[key]
	if !exists {
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}

	e.expiresAt = time.Now().Add(s.ttl)
	s.entries[key] = e
	// Each caller gets its own snapshot, like the redis store's JSON
	// round-trip, so concurrent requests never share cart state
	return e.session.Clone(), nil
}

// Save stores a snapshot of the session, resetting its expiration
func (s *InMemorySessionStore) Save(_ context.Context, websiteID uuid.UUID, session *checkout.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sessionKey(websiteID, session.ID)] = sessionEntry{
		session:   session.Clone(),
		expiresAt: time.Now().Add(s.ttl),
	}
	return nil
}

// Delete removes the session. Deleting a missing session is not an error.
func (s *InMemorySessionStore) Delete(_ context.Context, websiteID uuid.UUID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, sessionKey(websiteID, sessionID))
	return nil
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (s *InMemorySessionStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of stored sessions (for testing/monitoring)
func (s *InMemorySessionStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *InMemorySessionStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemorySessionStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

var _ checkout.SessionStore = (*InMemorySessionStore)(nil)
