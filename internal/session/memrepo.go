package session

import (
	"context"
	"sync"
	"time"
)

// memrepo is the in-memory repository used when no Redis is configured. TTL
// is enforced lazily on read.
type memrepo struct {
	mu  sync.RWMutex
	ttl time.Duration

	records map[string]*Record
}

func NewMemoryRepository(ttl time.Duration) Repository {
	return &memrepo{
		ttl:     ttl,
		records: make(map[string]*Record),
	}
}

func (m *memrepo) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	rec, ok := m.records[id]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if m.ttl > 0 && time.Since(rec.UpdatedAt) > m.ttl {
		m.mu.Lock()
		delete(m.records, id)
		m.mu.Unlock()
		return nil, nil
	}
	copy := *rec
	return &copy, nil
}

func (m *memrepo) Save(ctx context.Context, rec *Record) error {
	if rec == nil || rec.ID == "" {
		return ErrNotFound
	}
	copy := *rec
	m.mu.Lock()
	m.records[rec.ID] = &copy
	m.mu.Unlock()
	return nil
}

func (m *memrepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.records, id)
	m.mu.Unlock()
	return nil
}
