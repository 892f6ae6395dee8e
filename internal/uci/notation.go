package uci

import (
	"errors"
	"fmt"
	"strings"

	"chessvariant/internal/board"
	"chessvariant/internal/position"
)

// Format writes m in coordinate notation. Castling moves are written as the
// royal piece's own step, e.g. "e1g1".
func Format(dims board.Dimensions, m position.Move) string {
	var b strings.Builder
	b.WriteString(dims.Algebraic(m.From))
	b.WriteString(dims.Algebraic(m.To))
	if m.Promotion != nil {
		b.WriteByte(m.Promotion.Symbol)
	}
	return b.String()
}

// FormatAll writes each move of ms.
func FormatAll(dims board.Dimensions, ms []position.Move) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = Format(dims, m)
	}
	return out
}

// Parse reads coordinate notation for a board of the given dimensions. The
// promotion letter is accepted in either case.
func Parse(dims board.Dimensions, s string) (Intent, error) {
	s = strings.TrimSpace(s)

	from, rest, err := splitSquare(s)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %q: %v", ErrInvalidMoveText, s, err)
	}
	to, rest, err := splitSquare(rest)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %q: %v", ErrInvalidMoveText, s, err)
	}

	var in Intent
	if in.From, err = dims.ParseSquare(from); err != nil {
		return Intent{}, fmt.Errorf("%w: %q: %v", ErrInvalidMoveText, s, err)
	}
	if in.To, err = dims.ParseSquare(to); err != nil {
		return Intent{}, fmt.Errorf("%w: %q: %v", ErrInvalidMoveText, s, err)
	}

	switch len(rest) {
	case 0:
	case 1:
		c := rest[0] | 0x20
		if c < 'a' || c > 'z' {
			return Intent{}, fmt.Errorf("%w: %q: bad promotion letter", ErrInvalidMoveText, s)
		}
		in.Promotion = c
	default:
		return Intent{}, fmt.Errorf("%w: %q: trailing text", ErrInvalidMoveText, s)
	}
	return in, nil
}

// splitSquare cuts one square (a letter followed by digits) off the front
// of s.
func splitSquare(s string) (string, string, error) {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return "", "", errors.New("expected a file letter")
	}
	i := 1
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 1 {
		return "", "", errors.New("expected a rank number")
	}
	return s[:i], s[i:], nil
}
