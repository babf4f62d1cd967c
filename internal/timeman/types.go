package timeman

import "time"

// Clock is the read-only clock state for the side to move, captured once per
// move before the search starts.
type Clock struct {
	Remaining time.Duration // time left on our clock, never negative
	Increment time.Duration // added after each of our moves
	MovesToGo int           // moves until the next time control; 0 = sudden death
	Ply       int           // current half-move index
}

// Session carries the state that survives across moves within one game. One
// instance per game; independent games must not share it. Callers serialize
// Init calls for the same session.
type Session struct {
	// Node-rate mode latch: AvailableNodes is fixed once, at the first Init of
	// the game, and reused for every later move. The explicit flag
	// distinguishes "never latched" from a legitimately exhausted budget.
	NodesLatched   bool      `json:"nodes_latched"`
	AvailableNodes int64     `json:"available_nodes"`
	SearchStart    time.Time `json:"search_start"`
}

// Elapsed reports time spent since the last Init, for comparison against the
// budget by the caller's stop logic.
func (s *Session) Elapsed() time.Duration {
	if s.SearchStart.IsZero() {
		return 0
	}
	return time.Since(s.SearchStart)
}

// Budget is the per-move allocation pair. Optimum is the target the search
// should prefer to stop near; Maximum is the hard ceiling under difficulty.
// Optimum never exceeds Maximum.
type Budget struct {
	Optimum time.Duration
	Maximum time.Duration
}
