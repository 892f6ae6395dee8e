package game

import (
	"chessvariant/internal/board"
	"chessvariant/internal/fen"
	"chessvariant/internal/movegen"
	"chessvariant/internal/position"
	"chessvariant/internal/uci"
	"chessvariant/internal/variant"
)

// Config returns the variant being played.
func (s *Session) Config() *variant.Config { return s.cfg }

// At returns the occupant of sq. Off-board squares read as empty.
func (s *Session) At(sq board.Square) position.Occupant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.At(sq)
}

// SideToMove returns the color whose turn it is.
func (s *Session) SideToMove() board.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.SideToMove()
}

// Legal returns the legal moves of the side to move.
func (s *Session) Legal() ([]position.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return movegen.LegalMoves(s.state)
}

// Targets returns the squares the piece on from may legally move to, each
// listed once. A front end uses it to highlight candidate squares.
func (s *Session) Targets(from board.Square) ([]board.Square, error) {
	legal, err := s.Legal()
	if err != nil {
		return nil, err
	}
	var out []board.Square
	for _, m := range legal {
		if m.From != from {
			continue
		}
		if len(out) > 0 && out[len(out)-1] == m.To {
			continue
		}
		out = append(out, m.To)
	}
	return out, nil
}

// InCheck reports whether the side to move has a royal piece attacked.
func (s *Session) InCheck() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return movegen.InCheck(s.state, s.state.SideToMove())
}

// FEN returns the current position text.
func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fen.Encode(s.state)
}

// Snapshot returns a copy of the current position that the caller owns.
func (s *Session) Snapshot() *position.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// History returns the moves played so far in coordinate notation.
func (s *Session) History() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.history))
	for i, p := range s.history {
		out[i] = p.text
	}
	return out
}

// PositionCommand describes the game as a "position" command: the starting
// position text followed by the moves played.
func (s *Session) PositionCommand() string {
	s.mu.Lock()
	start := s.startFEN
	s.mu.Unlock()
	if start == fenOf(s.cfg) {
		start = ""
	}
	return uci.BuildPositionCommand(start, s.History())
}

// fenOf returns the canonical starting position text of cfg, or "" if it
// does not parse.
func fenOf(cfg *variant.Config) string {
	st, err := fen.Start(cfg)
	if err != nil {
		return ""
	}
	return fen.Encode(st)
}
