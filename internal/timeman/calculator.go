package timeman

import "math"

// Mode selects which of the two allocations is being computed.
type Mode int

const (
	// Optimum is the sustainable per-move pace.
	Optimum Mode = iota
	// Maximum is the one-off ceiling allowed when the position is difficult.
	Maximum
)

const (
	// moveHorizon bounds how many moves ahead allocation is planned.
	moveHorizon = 100
	// maxRatio lets the Maximum allocation step over the reserved share.
	maxRatio = 7.09
	// stealRatio bounds how much of the remaining moves' share the Maximum
	// allocation may take; later moves are never left with zero time.
	stealRatio = 0.35
)

// Per-mode ratio constants. Optimum keeps both ratios unmodified.
var modeRatios = [2]struct{ max, steal float64 }{
	Optimum: {1, 0},
	Maximum: {maxRatio, stealRatio},
}

// allocate computes how many milliseconds of myTime the current move may
// claim. Times are in milliseconds; the result never exceeds myTime.
//
// The current move's importance competes against the summed importance of our
// own remaining moves (spaced two plies apart). ratio1 grows the share when
// few important moves remain; ratio2 caps how much can be taken away from
// moves that still matter. The minimum of the two enforces both at once.
func allocate(mode Mode, myTime, myInc int64, movesToGo, ply, slowMover int) int64 {
	r := modeRatios[mode]

	moveImportance := Importance(ply) * float64(slowMover) / 100
	otherMovesImportance := 0.0
	for i := 1; i < movesToGo; i++ {
		otherMovesImportance += Importance(ply + 2*i)
	}

	// Treating importance as a relative probability that the game is still
	// going, estimate the total time remaining in the game: the increment is
	// amortized over the future moves in proportion to their importance.
	expectedTime := float64(myTime) + float64(myInc)*otherMovesImportance/moveImportance

	ratio1 := (r.max * moveImportance) / (r.max*moveImportance + otherMovesImportance)
	ratio2 := (moveImportance + r.steal*otherMovesImportance) / (moveImportance + otherMovesImportance)

	t := int64(expectedTime * math.Min(ratio1, ratio2))
	if t > myTime {
		t = myTime
	}
	return t
}
