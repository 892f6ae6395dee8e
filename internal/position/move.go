package position

import (
	"fmt"

	"chessvariant/internal/board"
	"chessvariant/internal/variant"
)

// Move is a single ply.
type Move struct {
	From board.Square
	To   board.Square

	// Castle names the castling route; the rook relocation is implied.
	Castle string

	// EnPassant is the target this move creates (double steps only).
	EnPassant *EnPassant

	// EnPassantCapture marks a capture of the pawn behind the active target.
	EnPassantCapture bool

	Promotion *variant.Piece
}

// Delta records a square's occupant before a write.
type Delta struct {
	Square board.Square
	Prior  Occupant
}

// Undo reverses exactly one Make.
type Undo struct {
	Deltas     []Delta
	SideToMove board.Color
	Castling   []string
	EnPassant  *EnPassant
	HalfMove   int
	FullMove   int
}

// Make applies m in place and returns the record that reverses it. The move
// is trusted to be pseudo-legal; only the squares, the castling route and
// the en passant target are checked, and the state is left untouched when a
// check fails.
func (s *State) Make(m Move) (Undo, error) {
	dims := s.cfg.Dimensions()
	if !dims.Contains(m.From) {
		return Undo{}, fmt.Errorf("%w: square %d is off the %dx%d board", ErrNoPieceAtSource, m.From, dims.Width, dims.Height)
	}
	if !dims.Contains(m.To) {
		return Undo{}, fmt.Errorf("%w: square %d on a %dx%d board", ErrTargetOffBoard, m.To, dims.Width, dims.Height)
	}
	src := s.squares[m.From]
	if src.Empty() {
		return Undo{}, fmt.Errorf("%w: %s", ErrNoPieceAtSource, dims.Algebraic(m.From))
	}

	var route *variant.CastlingRoute
	if m.Castle != "" {
		r, ok := s.cfg.Route(m.Castle)
		if !ok {
			return Undo{}, fmt.Errorf("%w: %q", ErrUnknownCastleRoute, m.Castle)
		}
		route = r
	}

	victim := board.NoSquare
	if m.EnPassantCapture {
		if s.enPassant == nil {
			return Undo{}, ErrNoEnPassantTarget
		}
		victim = s.EnPassantVictim(src)
	}

	u := Undo{
		SideToMove: s.sideToMove,
		Castling:   s.castling,
		EnPassant:  s.enPassant,
		HalfMove:   s.halfMove,
		FullMove:   s.fullMove,
	}
	captured := !s.squares[m.To].Empty()

	if victim != board.NoSquare {
		s.write(&u, victim, Occupant{})
	}

	s.enPassant = nil
	if m.EnPassant != nil {
		ep := *m.EnPassant
		s.enPassant = &ep
	}

	if s.sideToMove == board.Black {
		s.fullMove++
	}
	if src.Piece.Pawn != nil || captured {
		s.halfMove = 0
	} else {
		s.halfMove++
	}
	s.sideToMove = s.sideToMove.Opposite()

	if route != nil {
		royal, rook := s.squares[route.RoyalFrom], s.squares[route.RookFrom]
		s.write(&u, route.RoyalFrom, Occupant{})
		s.write(&u, route.RookFrom, Occupant{})
		s.write(&u, route.RoyalTo, royal)
		s.write(&u, route.RookTo, rook)
		s.revokeCastling(func(r *variant.CastlingRoute) bool { return r.Color == route.Color })
		return u, nil
	}

	placed := src
	if m.Promotion != nil {
		placed = Occupant{Piece: m.Promotion, Color: src.Color}
	}
	s.write(&u, m.From, Occupant{})
	s.write(&u, m.To, placed)
	s.revokeCastling(func(r *variant.CastlingRoute) bool {
		return r.RoyalFrom == m.From || r.RookFrom == m.From || r.RoyalFrom == m.To || r.RookFrom == m.To
	})
	return u, nil
}

// Undo restores the state captured by u. It replays deltas in reverse, so a
// square written twice ends up with its earliest prior occupant.
func (s *State) Undo(u Undo) {
	for i := len(u.Deltas) - 1; i >= 0; i-- {
		d := u.Deltas[i]
		s.squares[d.Square] = d.Prior
	}
	s.sideToMove = u.SideToMove
	s.castling = u.Castling
	s.enPassant = u.EnPassant
	s.halfMove = u.HalfMove
	s.fullMove = u.FullMove
}

func (s *State) write(u *Undo, sq board.Square, occ Occupant) {
	u.Deltas = append(u.Deltas, Delta{Square: sq, Prior: s.squares[sq]})
	s.squares[sq] = occ
}

// revokeCastling drops every available route matching drop. The slice is
// rebuilt rather than edited so Undo records keep their own copy.
func (s *State) revokeCastling(drop func(*variant.CastlingRoute) bool) {
	var kept []string
	changed := false
	for _, id := range s.castling {
		if r, ok := s.cfg.Route(id); ok && drop(r) {
			changed = true
			continue
		}
		kept = append(kept, id)
	}
	if changed {
		s.castling = kept
	}
}

// EnPassantVictim returns the square of the pawn an en passant capture by
// capturer would remove, or NoSquare when no target is active. A target read
// from a position string carries Capture == Delete; the pawn then sits one
// forward step behind the target as seen by the capturing pawn.
func (s *State) EnPassantVictim(capturer Occupant) board.Square {
	if s.enPassant == nil || capturer.Empty() {
		return board.NoSquare
	}
	ep := *s.enPassant
	if ep.Delete != ep.Capture || capturer.Piece.Pawn == nil {
		return ep.Delete
	}
	forward := capturer.Piece.Pawn.Forward[0].ForColor(capturer.Color)
	if sq := s.cfg.Dimensions().Offset(ep.Capture, forward.Mirror()); sq != board.NoSquare {
		return sq
	}
	return ep.Delete
}
