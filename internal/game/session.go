// Package game drives one game of a variant on behalf of a front end: it
// turns move intents into legal moves, keeps the take-back stack and exposes
// a read-only view of the position.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"chessvariant/internal/board"
	"chessvariant/internal/fen"
	"chessvariant/internal/movegen"
	"chessvariant/internal/position"
	"chessvariant/internal/uci"
	"chessvariant/internal/variant"
)

var (
	ErrIllegalMove       = errors.New("illegal move")
	ErrPromotionRequired = errors.New("promotion piece required")
	ErrNothingToUndo     = errors.New("nothing to undo")
)

// Event describes a change to the position.
type Event struct {
	Move     string // Coordinate notation
	FEN      string // Position after the change
	Takeback bool
}

type ply struct {
	move position.Move
	undo position.Undo
	text string
}

// Session owns a State. All methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	cfg      *variant.Config
	state    *position.State
	startFEN string
	history  []ply

	onChange func(Event)

	logger *slog.Logger
}

// NewSession starts a game of cfg from position text s, or from the
// variant's starting position when s is empty.
func NewSession(cfg *variant.Config, s string) (*Session, error) {
	if s == "" {
		s = cfg.StartingPosition()
	}
	st, err := fen.Parse(cfg, s)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:      cfg,
		state:    st,
		startFEN: fen.Encode(st),
		logger:   slog.Default().With("component", "session", "variant", cfg.Name()),
	}, nil
}

// SetChangeCallback sets the function called after every accepted move and
// take-back. It runs on the caller's goroutine with the session unlocked.
func (s *Session) SetChangeCallback(cb func(Event)) {
	s.mu.Lock()
	s.onChange = cb
	s.mu.Unlock()
}

// Play applies the legal move matching in. A move that promotes needs a
// promotion letter; without one Play returns ErrPromotionRequired and the
// position is unchanged.
func (s *Session) Play(in uci.Intent) (position.Move, error) {
	s.mu.Lock()
	m, err := s.resolve(in)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug("move rejected", "from", s.algebraic(in.From), "to", s.algebraic(in.To), "error", err)
		return position.Move{}, err
	}

	u, err := s.state.Make(m)
	if err != nil {
		s.mu.Unlock()
		return position.Move{}, fmt.Errorf("apply move: %w", err)
	}
	text := uci.Format(s.cfg.Dimensions(), m)
	s.history = append(s.history, ply{move: m, undo: u, text: text})
	ev := Event{Move: text, FEN: fen.Encode(s.state)}
	cb := s.onChange
	s.mu.Unlock()

	s.logger.Info("move played", "move", text, "fen", ev.FEN)
	if cb != nil {
		cb(ev)
	}
	return m, nil
}

// PlayText parses coordinate notation and plays it.
func (s *Session) PlayText(text string) (position.Move, error) {
	in, err := uci.Parse(s.cfg.Dimensions(), text)
	if err != nil {
		return position.Move{}, err
	}
	return s.Play(in)
}

// Takeback reverses the most recent move and returns it.
func (s *Session) Takeback() (position.Move, error) {
	s.mu.Lock()
	if len(s.history) == 0 {
		s.mu.Unlock()
		return position.Move{}, ErrNothingToUndo
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.state.Undo(last.undo)
	ev := Event{Move: last.text, FEN: fen.Encode(s.state), Takeback: true}
	cb := s.onChange
	s.mu.Unlock()

	s.logger.Info("move taken back", "move", last.text)
	if cb != nil {
		cb(ev)
	}
	return last.move, nil
}

// resolve finds the legal move named by in. Caller holds s.mu.
func (s *Session) resolve(in uci.Intent) (position.Move, error) {
	legal, err := movegen.LegalMoves(s.state)
	if err != nil {
		return position.Move{}, err
	}

	var candidates []position.Move
	for _, m := range legal {
		if m.From == in.From && m.To == in.To {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return position.Move{}, fmt.Errorf("%w: %s%s", ErrIllegalMove, s.algebraic(in.From), s.algebraic(in.To))
	}

	if candidates[0].Promotion == nil {
		if in.Promotion != 0 {
			return position.Move{}, fmt.Errorf("%w: %s%s does not promote", ErrIllegalMove, s.algebraic(in.From), s.algebraic(in.To))
		}
		return candidates[0], nil
	}

	if in.Promotion == 0 {
		return position.Move{}, fmt.Errorf("%w: %s%s", ErrPromotionRequired, s.algebraic(in.From), s.algebraic(in.To))
	}
	for _, m := range candidates {
		if m.Promotion.Symbol == in.Promotion {
			return m, nil
		}
	}
	return position.Move{}, fmt.Errorf("%w: cannot promote to %q", ErrIllegalMove, in.Promotion)
}

func (s *Session) algebraic(sq board.Square) string {
	if !s.cfg.Dimensions().Contains(sq) {
		return "?"
	}
	return s.cfg.Dimensions().Algebraic(sq)
}

// Replay builds a session from a "position" command, playing each listed
// move in turn. It fails on the first move that is not legal.
func Replay(cfg *variant.Config, line string) (*Session, error) {
	cmd, err := uci.ParsePositionCommand(line)
	if err != nil {
		return nil, err
	}
	s, err := NewSession(cfg, cmd.FEN)
	if err != nil {
		return nil, err
	}
	for i, text := range cmd.Moves {
		if _, err := s.PlayText(text); err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i+1, text, err)
		}
	}
	return s, nil
}
