package uci

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hanool/timekeeper/internal/timeman"
)

// GoParams are the clock-related parameters of a UCI "go" command.
type GoParams struct {
	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MovesToGo int

	// Pass-through limits: when one of these is set the engine is told its
	// budget directly and no allocation is needed.
	MoveTime time.Duration
	Nodes    int64
	Depth    int
	Infinite bool

	Ponder bool
}

// HasClock reports whether the command carries a real clock to allocate from.
func (p GoParams) HasClock() bool {
	return (p.WhiteTime > 0 || p.BlackTime > 0) &&
		p.MoveTime == 0 && p.Nodes == 0 && p.Depth == 0 && !p.Infinite
}

// ClockFor builds the allocator input for the side to move.
func (p GoParams) ClockFor(whiteToMove bool, ply int) timeman.Clock {
	clk := timeman.Clock{MovesToGo: p.MovesToGo, Ply: ply}
	if whiteToMove {
		clk.Remaining, clk.Increment = p.WhiteTime, p.WhiteInc
	} else {
		clk.Remaining, clk.Increment = p.BlackTime, p.BlackInc
	}
	return clk
}

// ParseGo reads the tokens of a "go" command line. The leading "go" itself is
// optional. Unknown tokens are rejected so typos never silently change the
// time control.
func ParseGo(line string) (GoParams, error) {
	var p GoParams

	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) > 0 && fields[0] == "go" {
		fields = fields[1:]
	}

	for i := 0; i < len(fields); i++ {
		switch tok := fields[i]; tok {
		case "wtime", "btime", "winc", "binc", "movetime":
			if i+1 >= len(fields) {
				return GoParams{}, fmt.Errorf("%s: missing value", tok)
			}
			ms, err := strconv.ParseInt(fields[i+1], 10, 64)
			if err != nil {
				return GoParams{}, fmt.Errorf("%s: %w", tok, err)
			}
			d := time.Duration(ms) * time.Millisecond
			switch tok {
			case "wtime":
				p.WhiteTime = d
			case "btime":
				p.BlackTime = d
			case "winc":
				p.WhiteInc = d
			case "binc":
				p.BlackInc = d
			case "movetime":
				p.MoveTime = d
			}
			i++
		case "movestogo", "depth":
			if i+1 >= len(fields) {
				return GoParams{}, fmt.Errorf("%s: missing value", tok)
			}
			n, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return GoParams{}, fmt.Errorf("%s: %w", tok, err)
			}
			if tok == "movestogo" {
				p.MovesToGo = n
			} else {
				p.Depth = n
			}
			i++
		case "nodes":
			if i+1 >= len(fields) {
				return GoParams{}, fmt.Errorf("nodes: missing value")
			}
			n, err := strconv.ParseInt(fields[i+1], 10, 64)
			if err != nil {
				return GoParams{}, fmt.Errorf("nodes: %w", err)
			}
			p.Nodes = n
			i++
		case "infinite":
			p.Infinite = true
		case "ponder":
			p.Ponder = true
		default:
			return GoParams{}, fmt.Errorf("unknown go parameter %q", tok)
		}
	}

	return p, nil
}

// FormatBudget renders the budget as the "go" command an engine that does no
// time management of its own would be handed.
func FormatBudget(b timeman.Budget) string {
	return "go movetime " + strconv.FormatInt(b.Optimum.Milliseconds(), 10)
}
