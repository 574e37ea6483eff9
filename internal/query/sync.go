package query

import (
	"context"
	"sync"

	"MarketCache/internal/table"
)

// Synchronized serialises every call on a Database behind one mutex.
type Synchronized struct {
	mu sync.Mutex
	db *Database
}

// NewSynchronized wraps db.
func NewSynchronized(db *Database) *Synchronized { return &Synchronized{db: db} }

// GetInfo calls Database.GetInfo under the lock.
func (s *Synchronized) GetInfo(ctx context.Context, req Request) (*table.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.GetInfo(ctx, req)
}

// Reset calls Database.Reset under the lock.
func (s *Synchronized) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db.Reset()
}

// Data calls Database.Data under the lock.
func (s *Synchronized) Data() *table.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Data()
}
