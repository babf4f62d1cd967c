package allocator

import (
	"fmt"
	"strconv"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// resolvePly derives the half-move index and side to move from whatever
// position description the caller sent. A UCI move list is replayed from the
// start position so illegal histories are caught; a FEN is parsed through the
// chess library so malformed positions are rejected, with the ply taken from
// the fullmove counter.
func resolvePly(fen string, moves []string) (ply int, whiteToMove bool, err error) {
	if len(moves) > 0 {
		game := nchess.NewGame()
		for _, mv := range moves {
			mv = strings.ToLower(strings.TrimSpace(mv))
			if err := game.PushNotationMove(mv, nchess.UCINotation{}, nil); err != nil {
				return 0, false, fmt.Errorf("apply move %s: %w", mv, err)
			}
		}
		return len(moves), game.Position().Turn() == nchess.White, nil
	}

	fen = strings.TrimSpace(fen)
	if fen == "" || fen == "startpos" {
		return 0, true, nil
	}

	option, err := nchess.FEN(fen)
	if err != nil {
		return 0, false, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	game := nchess.NewGame(option)
	pos := game.Position()
	if err := checkKings(pos); err != nil {
		return 0, false, err
	}

	white := pos.Turn() == nchess.White
	ply, err = plyFromFullmove(fen, white)
	if err != nil {
		return 0, false, err
	}
	return ply, white, nil
}

// checkKings rejects boards the FEN grammar tolerates but no game can reach.
func checkKings(pos *nchess.Position) error {
	var white, black int
	for _, piece := range pos.Board().SquareMap() {
		if piece.Type() != nchess.King {
			continue
		}
		if piece.Color() == nchess.White {
			white++
		} else {
			black++
		}
	}
	if white != 1 || black != 1 {
		return fmt.Errorf("fen: position has %d white and %d black kings", white, black)
	}
	return nil
}

func plyFromFullmove(fen string, whiteToMove bool) (int, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return 0, fmt.Errorf("fen: want 6 fields, got %d", len(fields))
	}
	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return 0, fmt.Errorf("fen: bad fullmove number %q", fields[5])
	}
	ply := (fullmove - 1) * 2
	if !whiteToMove {
		ply++
	}
	return ply, nil
}
