package movegen

import (
	"fmt"

	"chessvariant/internal/position"
)

// LegalMoves returns the pseudo-legal moves that leave none of the mover's
// royal pieces attacked. Each candidate is made and undone on s, so s must
// not be shared with another goroutine during the call.
func LegalMoves(s *position.State) ([]position.Move, error) {
	pseudo := PseudoMoves(s)
	mover := s.SideToMove()

	legal := make([]position.Move, 0, len(pseudo))
	for _, m := range pseudo {
		u, err := s.Make(m)
		if err != nil {
			return nil, fmt.Errorf("simulate %s-%s: %w",
				s.Dimensions().Algebraic(m.From), s.Dimensions().Algebraic(m.To), err)
		}
		safe := !InCheck(s, mover)
		s.Undo(u)
		if safe {
			legal = append(legal, m)
		}
	}
	return legal, nil
}
