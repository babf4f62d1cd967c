package clockdto

import "time"

// Time-control regimes, named after the four clock shapes the allocator
// normalizes.
const (
	RegimeSuddenDeath    = "sudden_death"      // base time only
	RegimeMovesInTime    = "moves_in_time"     // x moves in y
	RegimeIncrement      = "increment"         // base + increment
	RegimeMovesInTimeInc = "moves_in_time_inc" // x moves in y + increment
)

// Allocation is the per-move result: how long the search should prefer to run
// (optimum) and how long it may run at most (maximum), plus the recorded
// search start the caller measures elapsed time against.
type Allocation struct {
	SessionID string    `json:"session_id"`
	OptimumMs int64     `json:"optimum_ms"`
	MaximumMs int64     `json:"maximum_ms"`
	Ply       int       `json:"ply"`
	Regime    string    `json:"regime"`
	StartedAt time.Time `json:"started_at"`

	// GoCommand is the budget rendered as the UCI command an engine doing no
	// time management of its own would be handed.
	GoCommand string `json:"go_command"`
}

// Optimum returns the preferred budget as a duration.
func (a *Allocation) Optimum() time.Duration {
	return time.Duration(a.OptimumMs) * time.Millisecond
}

// Maximum returns the hard ceiling as a duration.
func (a *Allocation) Maximum() time.Duration {
	return time.Duration(a.MaximumMs) * time.Millisecond
}
