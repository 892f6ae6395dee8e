// Package position holds the mutable game state of a variant and the
// make/undo pair that is the only way to change it once built.
//
// A State has a single owner. Make/Undo calls must nest strictly (LIFO) and
// must not run concurrently on the same State; use Clone to hand a copy to
// another goroutine.
package position

import (
	"errors"
	"fmt"
	"slices"

	"chessvariant/internal/board"
	"chessvariant/internal/variant"
)

var (
	ErrInvalidSetup       = errors.New("invalid position setup")
	ErrNoPieceAtSource    = errors.New("no piece at source square")
	ErrTargetOffBoard     = errors.New("target square off the board")
	ErrUnknownCastleRoute = errors.New("unknown castling route")
	ErrNoEnPassantTarget  = errors.New("no en passant target")
)

// Occupant is the content of a square. The zero value is an empty square.
type Occupant struct {
	Piece *variant.Piece
	Color board.Color
}

// Empty reports whether the square holds no piece.
func (o Occupant) Empty() bool {
	return o.Piece == nil
}

// Letter returns the piece letter (uppercase for White), or 0 when empty.
func (o Occupant) Letter() byte {
	if o.Piece == nil {
		return 0
	}
	return o.Piece.Letter(o.Color)
}

// EnPassant describes a capturable double step. Capture is the square an
// enemy pawn moves to; Delete holds the pawn that is removed.
type EnPassant struct {
	Capture board.Square
	Delete  board.Square
}

// Setup is the raw material for a State.
type Setup struct {
	Squares    []Occupant
	SideToMove board.Color
	Castling   []string
	EnPassant  *EnPassant
	HalfMove   int
	FullMove   int
}

// State is a position of a variant game.
type State struct {
	cfg        *variant.Config
	squares    []Occupant
	sideToMove board.Color
	castling   []string
	enPassant  *EnPassant
	halfMove   int
	fullMove   int
}

// New builds a State, checking that the setup fits cfg.
func New(cfg *variant.Config, setup Setup) (*State, error) {
	dims := cfg.Dimensions()
	if len(setup.Squares) != dims.Size() {
		return nil, fmt.Errorf("%w: %d squares for a %dx%d board", ErrInvalidSetup, len(setup.Squares), dims.Width, dims.Height)
	}
	for i, occ := range setup.Squares {
		if occ.Empty() {
			continue
		}
		if cfg.Piece(occ.Piece.Symbol) != occ.Piece {
			return nil, fmt.Errorf("%w: piece %q on %s is not in the %s catalog",
				ErrInvalidSetup, occ.Piece.Symbol, dims.Algebraic(board.Square(i)), cfg.Name())
		}
	}
	for _, id := range setup.Castling {
		if _, ok := cfg.Route(id); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCastleRoute, id)
		}
	}
	if ep := setup.EnPassant; ep != nil && (!dims.Contains(ep.Capture) || !dims.Contains(ep.Delete)) {
		return nil, fmt.Errorf("%w: en passant square off the board", ErrInvalidSetup)
	}
	if setup.HalfMove < 0 || setup.FullMove < 0 {
		return nil, fmt.Errorf("%w: negative move counter", ErrInvalidSetup)
	}

	s := &State{
		cfg:        cfg,
		squares:    slices.Clone(setup.Squares),
		sideToMove: setup.SideToMove,
		castling:   slices.Clone(setup.Castling),
		halfMove:   setup.HalfMove,
		fullMove:   setup.FullMove,
	}
	if setup.EnPassant != nil {
		ep := *setup.EnPassant
		s.enPassant = &ep
	}
	return s, nil
}

// Config returns the variant the state belongs to.
func (s *State) Config() *variant.Config { return s.cfg }

// Dimensions returns the board size.
func (s *State) Dimensions() board.Dimensions { return s.cfg.Dimensions() }

// At returns the occupant of sq. Off-board squares read as empty.
func (s *State) At(sq board.Square) Occupant {
	if sq < 0 || int(sq) >= len(s.squares) {
		return Occupant{}
	}
	return s.squares[sq]
}

// Len returns the number of squares.
func (s *State) Len() int { return len(s.squares) }

// SideToMove returns the color to move.
func (s *State) SideToMove() board.Color { return s.sideToMove }

// Castling returns the available castling route ids.
func (s *State) Castling() []string { return slices.Clone(s.castling) }

// CanCastle reports whether route id is still available.
func (s *State) CanCastle(id string) bool {
	return slices.Contains(s.castling, id)
}

// EnPassant returns the active en passant target, if any.
func (s *State) EnPassant() (EnPassant, bool) {
	if s.enPassant == nil {
		return EnPassant{}, false
	}
	return *s.enPassant, true
}

// HalfMove returns the half-move clock.
func (s *State) HalfMove() int { return s.halfMove }

// FullMove returns the full-move counter.
func (s *State) FullMove() int { return s.fullMove }

// Clone returns a deep copy sharing only the immutable Config.
func (s *State) Clone() *State {
	c := *s
	c.squares = slices.Clone(s.squares)
	c.castling = slices.Clone(s.castling)
	if s.enPassant != nil {
		ep := *s.enPassant
		c.enPassant = &ep
	}
	return &c
}

// Equal reports whether both states describe the same position: occupancy,
// side to move, castling set, en passant and clocks.
func (s *State) Equal(o *State) bool {
	if s.cfg != o.cfg || s.sideToMove != o.sideToMove ||
		s.halfMove != o.halfMove || s.fullMove != o.fullMove {
		return false
	}
	if !slices.Equal(s.squares, o.squares) || !slices.Equal(s.castling, o.castling) {
		return false
	}
	if (s.enPassant == nil) != (o.enPassant == nil) {
		return false
	}
	return s.enPassant == nil || *s.enPassant == *o.enPassant
}

// Royals returns the squares holding royal pieces of color c.
func (s *State) Royals(c board.Color) []board.Square {
	var squares []board.Square
	for i, occ := range s.squares {
		if !occ.Empty() && occ.Color == c && occ.Piece.Royal {
			squares = append(squares, board.Square(i))
		}
	}
	return squares
}
