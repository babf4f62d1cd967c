package clockdto

// AllocateRequest asks for the thinking-time budget of the move about to be
// searched. The clock can be given directly (time_ms and friends), by preset
// name, or both (explicit fields win). The position can be given as an
// explicit ply, a FEN, or a UCI move list from the start position; when more
// than one is present the most specific (ply, then moves, then FEN) is used.
type AllocateRequest struct {
	SessionID string `json:"session_id,omitempty"`

	Preset      string `json:"preset,omitempty"`
	TimeMs      int64  `json:"time_ms,omitempty"`
	IncrementMs int64  `json:"increment_ms,omitempty"`
	MovesToGo   int    `json:"moves_to_go,omitempty"`

	// Go is a raw UCI "go" command line (wtime/btime/winc/binc/movestogo);
	// the clock for the side to move is taken from it. Lines carrying
	// movetime, nodes, depth, or infinite are rejected: those are
	// pass-through limits that need no allocation.
	Go string `json:"go,omitempty"`

	Ply   *int     `json:"ply,omitempty"`
	FEN   string   `json:"fen,omitempty"`
	Moves []string `json:"moves,omitempty"`
}

// SessionInfo describes a session over the API.
type SessionInfo struct {
	SessionID      string `json:"session_id"`
	Moves          int    `json:"moves"`
	NodesLatched   bool   `json:"nodes_latched"`
	AvailableNodes int64  `json:"available_nodes,omitempty"`
}
