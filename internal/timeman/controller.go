package timeman

import "time"

// Config holds the tunables the controller reads per move. Zero values are
// usable: no floor, no overhead, neutral pace, node mode off, ponder off.
type Config struct {
	MinThinkingTime time.Duration
	MoveOverhead    time.Duration
	SlowMover       int  // percent multiplier on move importance; 0 means 100
	NodesTime       int  // nodes per millisecond; 0 disables node-rate mode
	Ponder          bool // some thinking happens on the opponent's clock
}

// Controller turns clock state into a per-move budget. It owns no state of
// its own; everything that persists across moves lives on the Session.
type Controller struct {
	cfg Config
}

func NewController(cfg Config) *Controller {
	if cfg.SlowMover <= 0 {
		cfg.SlowMover = 100
	}
	return &Controller{cfg: cfg}
}

// Init computes the allocation for the move about to be searched and records
// the search start on the session. It supports four kinds of time control:
//
//	inc == 0 && movesToGo == 0: sudden death
//	inc == 0 && movesToGo != 0: x moves in y
//	inc  > 0 && movesToGo == 0: base + increment
//	inc  > 0 && movesToGo != 0: x moves in y + increment
func (c *Controller) Init(s *Session, clk Clock) Budget {
	myTime := clk.Remaining.Milliseconds()
	myInc := clk.Increment.Milliseconds()
	if myTime < 0 {
		myTime = 0
	}
	if myInc < 0 {
		myInc = 0
	}

	// In node-rate mode the clock is simulated in search nodes: latch the node
	// budget from the real clock once at game start, then run every formula on
	// nodes instead of milliseconds. The configured rate must stay well below
	// the real engine speed or the wall clock runs out first.
	if c.cfg.NodesTime > 0 {
		if !s.NodesLatched {
			s.AvailableNodes = int64(c.cfg.NodesTime) * myTime
			s.NodesLatched = true
		}
		myTime = s.AvailableNodes
		myInc *= int64(c.cfg.NodesTime)
	}

	s.SearchStart = time.Now()

	mtg := moveHorizon
	if clk.MovesToGo > 0 && clk.MovesToGo < moveHorizon {
		mtg = clk.MovesToGo
	}

	myTime -= c.cfg.MoveOverhead.Milliseconds()
	if myTime < 0 {
		myTime = 0
	}

	optimum := allocate(Optimum, myTime, myInc, mtg, clk.Ply, c.cfg.SlowMover)
	maximum := allocate(Maximum, myTime, myInc, mtg, clk.Ply, c.cfg.SlowMover)

	minThink := c.cfg.MinThinkingTime.Milliseconds()
	if optimum < minThink {
		optimum = minThink
	}
	if maximum < minThink {
		maximum = minThink
	}

	if c.cfg.Ponder {
		optimum += optimum / 4
	}
	// The floor and the ponder bump can push optimum past maximum in
	// degenerate clocks; maximum must never bind below optimum.
	if maximum < optimum {
		maximum = optimum
	}

	return Budget{
		Optimum: time.Duration(optimum) * time.Millisecond,
		Maximum: time.Duration(maximum) * time.Millisecond,
	}
}
