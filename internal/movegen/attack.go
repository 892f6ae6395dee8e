// Package movegen generates moves for a position and answers attack queries.
// Nothing here mutates a State except the make/undo pairs of LegalMoves,
// which always leave it as they found it.
package movegen

import (
	"chessvariant/internal/board"
	"chessvariant/internal/position"
)

// IsAttacked reports whether any piece not of color defender attacks sq.
//
// Rather than asking every enemy piece whether it reaches sq, it looks
// outward from sq along each geometry the catalog declares and checks
// whether the first piece found is an enemy that declares that geometry.
// Cost is proportional to the number of geometries, not pieces.
func IsAttacked(s *position.State, sq board.Square, defender board.Color) bool {
	cfg := s.Config()
	dims := cfg.Dimensions()
	attacker := defender.Opposite()

	for _, d := range cfg.SliderDirections() {
		back := d.Mirror()
		for cur := dims.Offset(sq, back); cur != board.NoSquare; cur = dims.Offset(cur, back) {
			occ := s.At(cur)
			if occ.Empty() {
				continue
			}
			if occ.Color == attacker && occ.Piece.SlidesAlong(d) {
				return true
			}
			break
		}
	}

	for _, o := range cfg.LeaperOffsets() {
		from := dims.Offset(sq, o.Mirror())
		if from == board.NoSquare {
			continue
		}
		if occ := s.At(from); !occ.Empty() && occ.Color == attacker && occ.Piece.LeapsBy(o) {
			return true
		}
	}

	for _, c := range cfg.CaptureOffsets() {
		from := dims.Offset(sq, c.ForColor(attacker).Mirror())
		if from == board.NoSquare {
			continue
		}
		if occ := s.At(from); !occ.Empty() && occ.Color == attacker && occ.Piece.CapturesBy(c) {
			return true
		}
	}

	return false
}

// InCheck reports whether any royal piece of color c is attacked.
func InCheck(s *position.State, c board.Color) bool {
	for _, sq := range s.Royals(c) {
		if IsAttacked(s, sq, c) {
			return true
		}
	}
	return false
}
