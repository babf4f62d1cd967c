package allocator

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/hanool/timekeeper/internal/config"
	"github.com/hanool/timekeeper/internal/session"
	"github.com/hanool/timekeeper/internal/tcpreset"
	"github.com/hanool/timekeeper/internal/timeman"
	"github.com/hanool/timekeeper/internal/uci"
	"github.com/hanool/timekeeper/pkg/clockdto"
)

// Service is the per-move entry point: it resolves the request into clock
// state, runs the time controller against the game's session, and persists
// the session back.
type Service struct {
	sessions *session.Manager
	ctrl     *timeman.Controller
	log      *zap.Logger
}

func New(cfg *config.AppConfig, sessions *session.Manager, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	ctrl := timeman.NewController(timeman.Config{
		MinThinkingTime: cfg.MinThinkingTime,
		MoveOverhead:    cfg.MoveOverhead,
		SlowMover:       cfg.SlowMover,
		NodesTime:       cfg.NodesTime,
		Ponder:          cfg.Ponder,
	})
	return &Service{sessions: sessions, ctrl: ctrl, log: log}
}

func (s *Service) Allocate(ctx context.Context, req *clockdto.AllocateRequest) (*clockdto.Allocation, error) {
	if req == nil {
		return nil, clockdto.DomainError{Code: clockdto.CodeBadRequest, Message: "empty request"}
	}

	ply, whiteToMove, err := resolvePly(req.FEN, req.Moves)
	if err != nil {
		return nil, clockdto.DomainError{Code: clockdto.CodeInvalidPosition, Message: err.Error()}
	}
	if req.Ply != nil {
		ply = *req.Ply
		if ply < 0 {
			ply = 0
		}
	}

	clk, err := s.resolveClock(req, whiteToMove)
	if err != nil {
		return nil, err
	}
	clk.Ply = ply

	rec, err := s.sessions.GetOrCreate(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, clockdto.DomainError{Code: clockdto.CodeSessionNotFound, Message: "unknown session " + req.SessionID}
		}
		return nil, err
	}

	budget := s.ctrl.Init(&rec.State, clk)
	rec.Moves++
	if err := s.sessions.Save(ctx, rec); err != nil {
		return nil, err
	}

	out := &clockdto.Allocation{
		SessionID: rec.ID,
		OptimumMs: budget.Optimum.Milliseconds(),
		MaximumMs: budget.Maximum.Milliseconds(),
		Ply:       clk.Ply,
		Regime:    regime(clk.Increment, clk.MovesToGo),
		StartedAt: rec.State.SearchStart,
		GoCommand: uci.FormatBudget(budget),
	}

	s.log.Debug("allocated move time",
		zap.String("session", rec.ID),
		zap.Int("ply", clk.Ply),
		zap.String("regime", out.Regime),
		zap.Duration("remaining", clk.Remaining),
		zap.Int64("optimum_ms", out.OptimumMs),
		zap.Int64("maximum_ms", out.MaximumMs),
	)
	return out, nil
}

// resolveClock merges the clock sources in increasing precedence: named
// preset, raw UCI go line, explicit fields. Negative values are clamped
// rather than rejected.
func (s *Service) resolveClock(req *clockdto.AllocateRequest, whiteToMove bool) (timeman.Clock, error) {
	var clk timeman.Clock

	if req.Preset != "" {
		tc, err := tcpreset.Get(req.Preset)
		if err != nil {
			return timeman.Clock{}, clockdto.DomainError{Code: clockdto.CodeUnknownPreset, Message: err.Error()}
		}
		clk.Remaining = tc.Base
		clk.Increment = tc.Increment
		clk.MovesToGo = tc.MovesToGo
	}

	if req.Go != "" {
		params, err := uci.ParseGo(req.Go)
		if err != nil {
			return timeman.Clock{}, clockdto.DomainError{Code: clockdto.CodeBadRequest, Message: "go line: " + err.Error()}
		}
		if !params.HasClock() {
			return timeman.Clock{}, clockdto.DomainError{Code: clockdto.CodeBadRequest, Message: "go line carries no allocatable clock"}
		}
		side := params.ClockFor(whiteToMove, 0)
		clk.Remaining = side.Remaining
		clk.Increment = side.Increment
		clk.MovesToGo = side.MovesToGo
	}

	if req.TimeMs != 0 {
		clk.Remaining = time.Duration(req.TimeMs) * time.Millisecond
	}
	if req.IncrementMs != 0 {
		clk.Increment = time.Duration(req.IncrementMs) * time.Millisecond
	}
	if req.MovesToGo != 0 {
		clk.MovesToGo = req.MovesToGo
	}

	if clk.Remaining < 0 {
		clk.Remaining = 0
	}
	if clk.Increment < 0 {
		clk.Increment = 0
	}
	if clk.MovesToGo < 0 {
		clk.MovesToGo = 0
	}

	if req.Preset == "" && req.TimeMs == 0 && req.Go == "" {
		return timeman.Clock{}, clockdto.DomainError{Code: clockdto.CodeBadRequest, Message: "time_ms, preset, or go line required"}
	}
	return clk, nil
}

func regime(inc time.Duration, movesToGo int) string {
	switch {
	case inc == 0 && movesToGo == 0:
		return clockdto.RegimeSuddenDeath
	case inc == 0:
		return clockdto.RegimeMovesInTime
	case movesToGo == 0:
		return clockdto.RegimeIncrement
	default:
		return clockdto.RegimeMovesInTimeInc
	}
}

// CreateSession starts a new game session.
func (s *Service) CreateSession(ctx context.Context) (*clockdto.SessionInfo, error) {
	rec, err := s.sessions.Create(ctx)
	if err != nil {
		return nil, err
	}
	return describe(rec), nil
}

// GetSession describes a session.
func (s *Service) GetSession(ctx context.Context, id string) (*clockdto.SessionInfo, error) {
	rec, err := s.sessions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, clockdto.DomainError{Code: clockdto.CodeSessionNotFound, Message: "unknown session " + id}
		}
		return nil, err
	}
	return describe(rec), nil
}

// DeleteSession ends a game session.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func describe(rec *session.Record) *clockdto.SessionInfo {
	return &clockdto.SessionInfo{
		SessionID:      rec.ID,
		Moves:          rec.Moves,
		NodesLatched:   rec.State.NodesLatched,
		AvailableNodes: rec.State.AvailableNodes,
	}
}
