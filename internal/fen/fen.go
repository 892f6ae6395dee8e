// Package fen provides FEN-like position string parsing and generation for
// any variant board size.
package fen

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"chessvariant/internal/board"
	"chessvariant/internal/position"
	"chessvariant/internal/variant"
)

var (
	ErrMalformedPosition  = errors.New("malformed position string")
	ErrDimensionMismatch  = errors.New("board dimensions do not match the variant")
	ErrUnknownPieceSymbol = errors.New("unknown piece symbol")
)

const fieldCount = 6

// Start parses the variant's starting position.
func Start(cfg *variant.Config) (*position.State, error) {
	return Parse(cfg, cfg.StartingPosition())
}

// Parse parses a six-field position string against cfg.
func Parse(cfg *variant.Config, s string) (*position.State, error) {
	fields := strings.Split(s, " ")
	if len(fields) != fieldCount {
		return nil, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedPosition, fieldCount, len(fields))
	}
	for i, f := range fields {
		if f == "" {
			return nil, fmt.Errorf("%w: field %d is empty", ErrMalformedPosition, i+1)
		}
	}

	setup := position.Setup{}

	squares, err := parsePiecePlacement(cfg, fields[0])
	if err != nil {
		return nil, err
	}
	setup.Squares = squares

	switch fields[1][0] {
	case 'w', 'W':
		setup.SideToMove = board.White
	case 'b', 'B':
		setup.SideToMove = board.Black
	default:
		return nil, fmt.Errorf("%w: side to move %q", ErrMalformedPosition, fields[1])
	}

	if setup.Castling, err = parseCastling(cfg, fields[2]); err != nil {
		return nil, err
	}

	dims := cfg.Dimensions()
	ep, err := dims.ParseSquare(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: en passant: %v", ErrMalformedPosition, err)
	}
	if ep != board.NoSquare {
		setup.EnPassant = &position.EnPassant{Capture: ep, Delete: ep}
	}

	if setup.HalfMove, err = parseCounter("halfmove clock", fields[4]); err != nil {
		return nil, err
	}
	if setup.FullMove, err = parseCounter("fullmove number", fields[5]); err != nil {
		return nil, err
	}

	st, err := position.New(cfg, setup)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPosition, err)
	}
	return st, nil
}

// parsePiecePlacement reads the rows, top rank first.
func parsePiecePlacement(cfg *variant.Config, s string) ([]position.Occupant, error) {
	dims := cfg.Dimensions()
	rows := strings.Split(s, "/")
	if len(rows) != dims.Height {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrDimensionMismatch, dims.Height, len(rows))
	}

	squares := make([]position.Occupant, dims.Size())
	for rowIdx, row := range rows {
		rank := dims.Height - 1 - rowIdx
		file := 0

		for i := 0; i < len(row); {
			c := row[i]
			if isDigit(c) {
				j := i
				for j < len(row) && isDigit(row[j]) {
					j++
				}
				run, err := strconv.Atoi(row[i:j])
				if err != nil {
					return nil, fmt.Errorf("%w: run length %q", ErrMalformedPosition, row[i:j])
				}
				if run > dims.Width-file {
					return nil, fmt.Errorf("%w: rank %d overflows %d files", ErrDimensionMismatch, rank+1, dims.Width)
				}
				file += run
				i = j
				continue
			}

			piece := cfg.Piece(c)
			if piece == nil {
				return nil, fmt.Errorf("%w: %q", ErrUnknownPieceSymbol, string(c))
			}
			if file >= dims.Width {
				return nil, fmt.Errorf("%w: rank %d overflows %d files", ErrDimensionMismatch, rank+1, dims.Width)
			}
			color := board.Black
			if c >= 'A' && c <= 'Z' {
				color = board.White
			}
			squares[dims.Index(file, rank)] = position.Occupant{Piece: piece, Color: color}
			file++
			i++
		}

		if file != dims.Width {
			return nil, fmt.Errorf("%w: rank %d has %d files, want %d", ErrDimensionMismatch, rank+1, file, dims.Width)
		}
	}
	return squares, nil
}

// parseCastling matches route ids greedily, longest first.
func parseCastling(cfg *variant.Config, s string) ([]string, error) {
	if s == "-" {
		return nil, nil
	}

	var ids []string
	for rest := s; rest != ""; {
		match := ""
		for _, r := range cfg.Routes() {
			if len(r.ID) > len(match) && strings.HasPrefix(rest, r.ID) {
				match = r.ID
			}
		}
		if match == "" {
			return nil, fmt.Errorf("%w: unknown castling route in %q", ErrMalformedPosition, s)
		}
		if slices.Contains(ids, match) {
			return nil, fmt.Errorf("%w: castling route %q listed twice", ErrMalformedPosition, match)
		}
		ids = append(ids, match)
		rest = rest[len(match):]
	}
	return ids, nil
}

func parseCounter(name, s string) (int, error) {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, fmt.Errorf("%w: %s %q", ErrMalformedPosition, name, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedPosition, name, s)
	}
	return n, nil
}

// Encode returns the position string of st.
func Encode(st *position.State) string {
	dims := st.Dimensions()
	var sb strings.Builder

	// Piece placement
	for rank := dims.Height - 1; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < dims.Width; file++ {
			occ := st.At(dims.Index(file, rank))
			if occ.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(occ.Letter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	sb.WriteString(st.SideToMove().String())

	// Castling
	sb.WriteByte(' ')
	castling := st.Castling()
	if len(castling) == 0 {
		sb.WriteByte('-')
	} else {
		sb.WriteString(strings.Join(castling, ""))
	}

	// En passant
	sb.WriteByte(' ')
	if ep, ok := st.EnPassant(); ok {
		sb.WriteString(dims.Algebraic(ep.Capture))
	} else {
		sb.WriteByte('-')
	}

	// Halfmove clock and fullmove number
	fmt.Fprintf(&sb, " %d %d", st.HalfMove(), st.FullMove())

	return sb.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
