package session

import (
	"context"
	"sync"
	"time"

	"hotelbooking/internal/domain"
)

type memoryEntry struct {
	p       domain.PendingReservation
	expires time.Time
}

// MemoryStore is the in-process Store used when Redis is not configured.
// Expired entries are dropped on read.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[int64]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: make(map[int64]memoryEntry)}
}

func (s *MemoryStore) Put(_ context.Context, userID int64, p *domain.PendingReservation) error {
	cp := *p
	cp.Guests = append([]domain.PendingGuest(nil), p.Guests...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = memoryEntry{p: cp, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, userID int64) (*domain.PendingReservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return nil, ErrNotFound
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, userID)
		return nil, ErrNotFound
	}
	cp := e.p
	cp.Guests = append([]domain.PendingGuest(nil), e.p.Guests...)
	return &cp, nil
}

func (s *MemoryStore) Clear(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}
