package session

import (
	"context"
	"errors"
	"time"

	"github.com/hanool/timekeeper/internal/timeman"
)

var (
	ErrNotFound = errors.New("session not found")
)

// Record is the per-game state the allocator keeps between moves: the
// node-budget latch and the last recorded search start, plus bookkeeping.
type Record struct {
	ID        string          `json:"id"`
	State     timeman.Session `json:"state"`
	Moves     int             `json:"moves"` // allocations performed so far
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Repository stores session records. Get returns (nil, nil) for a missing or
// expired session.
type Repository interface {
	Get(ctx context.Context, id string) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
}
