package store

import (
	"context"
	"strings"
	"sync"
)

// pendingMemory keeps pending registrations in a mutex-guarded map.
// These records hold short-lived verification secrets and must never be
// persisted, so the memory implementation is the only one.
type pendingMemory struct {
	mu      sync.RWMutex
	pending map[string]*PendingRegistration
}

// NewPendingMemory creates an empty in-memory pending registration store.
func NewPendingMemory() PendingRegistrations {
	return &pendingMemory{
		pending: make(map[string]*PendingRegistration),
	}
}

var _ PendingRegistrations = (*pendingMemory)(nil)

func (s *pendingMemory) Get(ctx context.Context, email string) (*PendingRegistration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.pending[normalizeEmail(email)]
	if !ok {
		return nil, recordNotFound("pending registration", map[string]any{"email": email})
	}

	copied := *reg
	return &copied, nil
}

// Put stores or overwrites the record for reg.Email. Re-registering the
// same email before verification replaces the earlier submission.
func (s *pendingMemory) Put(ctx context.Context, reg *PendingRegistration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *reg
	copied.Email = normalizeEmail(reg.Email)
	s.pending[copied.Email] = &copied
	return nil
}

func (s *pendingMemory) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pending, normalizeEmail(email))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
