package allocator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hanool/timekeeper/internal/config"
	"github.com/hanool/timekeeper/internal/session"
	"github.com/hanool/timekeeper/pkg/clockdto"
)

func newTestService(t *testing.T, cfg *config.AppConfig) *Service {
	t.Helper()
	if cfg == nil {
		cfg = &config.AppConfig{SlowMover: 100}
	}
	mgr := session.NewManager(session.NewMemoryRepository(time.Hour))
	return New(cfg, mgr, zap.NewNop())
}

func intPtr(n int) *int { return &n }

func TestAllocateSuddenDeath(t *testing.T) {
	svc := newTestService(t, nil)

	got, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		TimeMs: 60000,
		Ply:    intPtr(10),
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got.SessionID == "" {
		t.Fatalf("expected a session to be created")
	}
	if got.Regime != clockdto.RegimeSuddenDeath {
		t.Fatalf("regime = %s, want sudden_death", got.Regime)
	}
	if !(got.OptimumMs > 0 && got.OptimumMs < got.MaximumMs && got.MaximumMs <= 60000) {
		t.Fatalf("budget out of range: %+v", got)
	}
	if got.StartedAt.IsZero() {
		t.Fatalf("start timestamp not recorded")
	}
}

func TestAllocateFromPreset(t *testing.T) {
	svc := newTestService(t, nil)

	got, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		Preset: "blitz",
		Ply:    intPtr(20),
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	// blitz is 3m + 2s increment, no moves-to-go
	if got.Regime != clockdto.RegimeIncrement {
		t.Fatalf("regime = %s, want increment", got.Regime)
	}
	if got.MaximumMs > 180000 {
		t.Fatalf("maximum %dms exceeds blitz base", got.MaximumMs)
	}
}

func TestAllocateExplicitFieldsOverridePreset(t *testing.T) {
	svc := newTestService(t, nil)

	withPreset, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		Preset: "blitz",
		TimeMs: 10000,
		Ply:    intPtr(20),
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if withPreset.MaximumMs > 10000 {
		t.Fatalf("explicit time_ms ignored: maximum %dms", withPreset.MaximumMs)
	}
}

func TestAllocateUnknownPreset(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{Preset: "warp-speed"})
	var derr clockdto.DomainError
	if !errors.As(err, &derr) || derr.Code != clockdto.CodeUnknownPreset {
		t.Fatalf("expected unknown_preset error, got %v", err)
	}
}

func TestAllocateRequiresClock(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{Ply: intPtr(4)})
	var derr clockdto.DomainError
	if !errors.As(err, &derr) || derr.Code != clockdto.CodeBadRequest {
		t.Fatalf("expected bad_request error, got %v", err)
	}
}

func TestAllocatePlyFromFEN(t *testing.T) {
	svc := newTestService(t, nil)

	// Black to move at fullmove 12 → ply 23.
	got, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		TimeMs: 60000,
		FEN:    "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 2 12",
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got.Ply != 23 {
		t.Fatalf("ply = %d, want 23", got.Ply)
	}
}

func TestAllocatePlyFromMoves(t *testing.T) {
	svc := newTestService(t, nil)

	got, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		TimeMs: 60000,
		Moves:  []string{"e2e4", "e7e5", "g1f3"},
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got.Ply != 3 {
		t.Fatalf("ply = %d, want 3", got.Ply)
	}
}

func TestAllocateRejectsIllegalMoves(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		TimeMs: 60000,
		Moves:  []string{"e2e5"},
	})
	var derr clockdto.DomainError
	if !errors.As(err, &derr) || derr.Code != clockdto.CodeInvalidPosition {
		t.Fatalf("expected invalid_position error, got %v", err)
	}
}

func TestAllocateRejectsBadFEN(t *testing.T) {
	svc := newTestService(t, nil)
	fens := []string{
		"not a fen",
		"x y z",
		"8/8/8/8/8/8/8/8 q - - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	}
	for _, fen := range fens {
		_, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{TimeMs: 60000, FEN: fen})
		var derr clockdto.DomainError
		if !errors.As(err, &derr) || derr.Code != clockdto.CodeInvalidPosition {
			t.Fatalf("fen %q: expected invalid_position, got %v", fen, err)
		}
	}
}

func TestAllocateRejectsKinglessBoard(t *testing.T) {
	// Grammatically valid FEN, but no game ever reaches a board without both
	// kings; it must not be budgeted.
	svc := newTestService(t, nil)
	fens := []string{
		"8/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/8 w - - 0 1",
		"4k3/8/8/8/8/8/8/2K1K3 w - - 0 1",
	}
	for _, fen := range fens {
		_, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{TimeMs: 60000, FEN: fen})
		var derr clockdto.DomainError
		if !errors.As(err, &derr) || derr.Code != clockdto.CodeInvalidPosition {
			t.Fatalf("fen %q: expected invalid_position, got %v", fen, err)
		}
	}
}

func TestAllocateFromGoLine(t *testing.T) {
	svc := newTestService(t, nil)

	// After 1.e4 black is to move, so the btime clock applies.
	got, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		Go:    "go wtime 60000 btime 45000",
		Moves: []string{"e2e4"},
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got.Ply != 1 {
		t.Fatalf("ply = %d, want 1", got.Ply)
	}
	if got.MaximumMs > 45000 {
		t.Fatalf("maximum %dms exceeds black's clock, white's clock was used", got.MaximumMs)
	}
	if got.Regime != clockdto.RegimeSuddenDeath {
		t.Fatalf("regime = %s, want sudden_death", got.Regime)
	}
	if want := fmt.Sprintf("go movetime %d", got.OptimumMs); got.GoCommand != want {
		t.Fatalf("go_command = %q, want %q", got.GoCommand, want)
	}
}

func TestAllocateGoLinePicksSideToMove(t *testing.T) {
	svc := newTestService(t, nil)

	// No position given: white to move, so the wtime clock applies and the
	// tiny btime must not cap the budget.
	got, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		Go: "go wtime 60000 btime 1000",
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got.MaximumMs <= 1000 {
		t.Fatalf("maximum %dms capped by black's clock, want white's", got.MaximumMs)
	}
}

func TestAllocateGoLineWithMovesToGo(t *testing.T) {
	svc := newTestService(t, nil)

	got, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		Go:  "go wtime 300000 btime 300000 winc 2000 binc 2000 movestogo 40",
		Ply: intPtr(16),
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if got.Regime != clockdto.RegimeMovesInTimeInc {
		t.Fatalf("regime = %s, want moves_in_time_inc", got.Regime)
	}
}

func TestAllocateRejectsBadGoLine(t *testing.T) {
	svc := newTestService(t, nil)
	lines := []string{
		"go wtime abc",
		"go searchmoves e2e4",
		"go movetime 3000",
		"go nodes 100000",
		"go infinite",
	}
	for _, line := range lines {
		_, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{Go: line})
		var derr clockdto.DomainError
		if !errors.As(err, &derr) || derr.Code != clockdto.CodeBadRequest {
			t.Fatalf("go line %q: expected bad_request, got %v", line, err)
		}
	}
}

func TestAllocateGoCommandAlwaysPresent(t *testing.T) {
	svc := newTestService(t, nil)
	got, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		TimeMs: 60000,
		Ply:    intPtr(10),
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if want := fmt.Sprintf("go movetime %d", got.OptimumMs); got.GoCommand != want {
		t.Fatalf("go_command = %q, want %q", got.GoCommand, want)
	}
}

func TestAllocateUnknownSession(t *testing.T) {
	svc := newTestService(t, nil)
	_, err := svc.Allocate(context.Background(), &clockdto.AllocateRequest{
		SessionID: "ghost",
		TimeMs:    60000,
	})
	var derr clockdto.DomainError
	if !errors.As(err, &derr) || derr.Code != clockdto.CodeSessionNotFound {
		t.Fatalf("expected session_not_found, got %v", err)
	}
}

func TestAllocateNodeLatchPersistsAcrossMoves(t *testing.T) {
	svc := newTestService(t, &config.AppConfig{SlowMover: 100, NodesTime: 500})
	ctx := context.Background()

	first, err := svc.Allocate(ctx, &clockdto.AllocateRequest{TimeMs: 10000, Ply: intPtr(0)})
	if err != nil {
		t.Fatalf("Allocate#1: %v", err)
	}
	info, err := svc.GetSession(ctx, first.SessionID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if !info.NodesLatched || info.AvailableNodes != 500*10000 {
		t.Fatalf("latch after first move: %+v", info)
	}

	// Second move reports a different wall clock; the latched budget stays.
	if _, err := svc.Allocate(ctx, &clockdto.AllocateRequest{
		SessionID: first.SessionID,
		TimeMs:    3000,
		Ply:       intPtr(2),
	}); err != nil {
		t.Fatalf("Allocate#2: %v", err)
	}
	info, err = svc.GetSession(ctx, first.SessionID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if info.AvailableNodes != 500*10000 {
		t.Fatalf("latch overwritten on second move: %+v", info)
	}
	if info.Moves != 2 {
		t.Fatalf("move count = %d, want 2", info.Moves)
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc := newTestService(t, nil)
	ctx := context.Background()

	info, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := svc.GetSession(ctx, info.SessionID); err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if err := svc.DeleteSession(ctx, info.SessionID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	_, err = svc.GetSession(ctx, info.SessionID)
	var derr clockdto.DomainError
	if !errors.As(err, &derr) || derr.Code != clockdto.CodeSessionNotFound {
		t.Fatalf("expected session_not_found after delete, got %v", err)
	}
}

func TestRegimeClassification(t *testing.T) {
	cases := []struct {
		inc  time.Duration
		mtg  int
		want string
	}{
		{0, 0, clockdto.RegimeSuddenDeath},
		{0, 40, clockdto.RegimeMovesInTime},
		{2 * time.Second, 0, clockdto.RegimeIncrement},
		{2 * time.Second, 40, clockdto.RegimeMovesInTimeInc},
	}
	for _, c := range cases {
		if got := regime(c.inc, c.mtg); got != c.want {
			t.Fatalf("regime(%v, %d) = %s, want %s", c.inc, c.mtg, got, c.want)
		}
	}
}
