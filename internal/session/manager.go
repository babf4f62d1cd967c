package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Manager mints session IDs and fronts the repository.
type Manager struct {
	repo Repository
}

func NewManager(repo Repository) *Manager {
	return &Manager{repo: repo}
}

// Create starts a fresh session and persists it.
func (m *Manager) Create(ctx context.Context) (*Record, error) {
	now := time.Now()
	rec := &Record{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.repo.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns the session or ErrNotFound.
func (m *Manager) Get(ctx context.Context, id string) (*Record, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrNotFound
	}
	rec, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// GetOrCreate loads the session when id is set, otherwise starts a new one.
func (m *Manager) GetOrCreate(ctx context.Context, id string) (*Record, error) {
	if strings.TrimSpace(id) == "" {
		return m.Create(ctx)
	}
	return m.Get(ctx, id)
}

// Save stamps and persists the record.
func (m *Manager) Save(ctx context.Context, rec *Record) error {
	rec.UpdatedAt = time.Now()
	return m.repo.Save(ctx, rec)
}

// Delete removes the session; deleting a missing session is not an error.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.repo.Delete(ctx, id)
}
