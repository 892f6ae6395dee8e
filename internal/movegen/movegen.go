package movegen

import (
	"fmt"

	"chessvariant/internal/board"
	"chessvariant/internal/position"
	"chessvariant/internal/variant"
)

// PseudoMoves returns every geometrically valid move for the side to move,
// ignoring whether the mover's royal pieces are left attacked.
func PseudoMoves(s *position.State) []position.Move {
	cfg := s.Config()
	us := s.SideToMove()

	var moves []position.Move
	for i := 0; i < s.Len(); i++ {
		from := board.Square(i)
		occ := s.At(from)
		if occ.Empty() || occ.Color != us {
			continue
		}
		piece := occ.Piece
		if cfg.Piece(piece.Symbol) != piece {
			panic(fmt.Sprintf("movegen: piece %q on %s is not in the %s catalog",
				piece.Symbol, cfg.Dimensions().Algebraic(from), cfg.Name()))
		}

		if piece.Pawn != nil {
			moves = pawnMoves(s, from, occ, moves)
		}
		if piece.Leaper != nil {
			moves = leaperMoves(s, from, piece, moves)
		}
		if piece.Slider != nil {
			moves = sliderMoves(s, from, piece, moves)
		}
		if piece.Royal {
			moves = castlingMoves(s, from, moves)
		}
	}
	return moves
}

func pawnMoves(s *position.State, from board.Square, pawn position.Occupant, moves []position.Move) []position.Move {
	dims := s.Dimensions()
	def := pawn.Piece.Pawn
	color := pawn.Color

	promotionRank := dims.Height - 1
	startRank := def.DoubleStepRank - 1
	if color == board.Black {
		promotionRank = 0
		startRank = dims.Height - def.DoubleStepRank
	}
	canDouble := def.DoubleStepRank > 0 && dims.Rank(from) == startRank

	for _, f := range def.Forward {
		step := f.ForColor(color)
		to := dims.Offset(from, step)
		if to == board.NoSquare || !s.At(to).Empty() {
			continue
		}
		moves = withPromotions(s.Config(), moves, position.Move{From: from, To: to}, dims.Rank(to) == promotionRank)

		if !canDouble {
			continue
		}
		double := dims.Offset(from, step.Scale(2))
		if double == board.NoSquare || !s.At(double).Empty() {
			continue
		}
		m := position.Move{
			From:      from,
			To:        double,
			EnPassant: &position.EnPassant{Capture: to, Delete: double},
		}
		moves = withPromotions(s.Config(), moves, m, dims.Rank(double) == promotionRank)
	}

	ep, hasEP := s.EnPassant()
	for _, c := range def.Capture {
		to := dims.Offset(from, c.ForColor(color))
		if to == board.NoSquare {
			continue
		}
		target := s.At(to)
		promote := dims.Rank(to) == promotionRank

		switch {
		case !target.Empty() && target.Color != color:
			moves = withPromotions(s.Config(), moves, position.Move{From: from, To: to}, promote)
		case target.Empty() && hasEP && to == ep.Capture:
			victim := s.At(s.EnPassantVictim(pawn))
			if victim.Empty() || victim.Color == color {
				continue
			}
			m := position.Move{From: from, To: to, EnPassantCapture: true}
			moves = withPromotions(s.Config(), moves, m, promote)
		}
	}
	return moves
}

// withPromotions appends m, fanned out over every promotion option when
// promote is set.
func withPromotions(cfg *variant.Config, moves []position.Move, m position.Move, promote bool) []position.Move {
	options := cfg.Promotions()
	if !promote || len(options) == 0 {
		return append(moves, m)
	}
	for _, p := range options {
		pm := m
		pm.Promotion = p
		moves = append(moves, pm)
	}
	return moves
}

func leaperMoves(s *position.State, from board.Square, piece *variant.Piece, moves []position.Move) []position.Move {
	dims := s.Dimensions()
	us := s.SideToMove()
	for _, o := range piece.Leaper.Offsets {
		// The slider already emits its first step along o.
		if piece.SlidesAlong(o) {
			continue
		}
		to := dims.Offset(from, o)
		if to == board.NoSquare {
			continue
		}
		if occ := s.At(to); !occ.Empty() && occ.Color == us {
			continue
		}
		moves = append(moves, position.Move{From: from, To: to})
	}
	return moves
}

func sliderMoves(s *position.State, from board.Square, piece *variant.Piece, moves []position.Move) []position.Move {
	dims := s.Dimensions()
	us := s.SideToMove()
	for _, d := range piece.Slider.Directions {
		for to := dims.Offset(from, d); to != board.NoSquare; to = dims.Offset(to, d) {
			occ := s.At(to)
			if !occ.Empty() && occ.Color == us {
				break
			}
			moves = append(moves, position.Move{From: from, To: to})
			if !occ.Empty() {
				break
			}
		}
	}
	return moves
}

// castlingMoves emits one move per available route starting on from. The
// royal may not castle out of, through or into an attack.
func castlingMoves(s *position.State, from board.Square, moves []position.Move) []position.Move {
	cfg := s.Config()
	us := s.SideToMove()
	checked := false

	for _, id := range s.Castling() {
		route, ok := cfg.Route(id)
		if !ok || route.Color != us || route.RoyalFrom != from {
			continue
		}
		if !checked {
			if IsAttacked(s, from, us) {
				return moves
			}
			checked = true
		}
		if rook := s.At(route.RookFrom); rook.Empty() || rook.Color != us {
			continue
		}
		if !routeClear(s, route, us) {
			continue
		}
		moves = append(moves, position.Move{From: route.RoyalFrom, To: route.RoyalTo, Castle: route.ID})
	}
	return moves
}

func routeClear(s *position.State, route *variant.CastlingRoute, us board.Color) bool {
	for _, sq := range route.Path {
		if !s.At(sq).Empty() || IsAttacked(s, sq, us) {
			return false
		}
	}
	for _, sq := range route.Empty {
		if !s.At(sq).Empty() {
			return false
		}
	}
	return true
}
