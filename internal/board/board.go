// Package board provides index arithmetic for rectangular boards of any size:
// conversion between linear indices, (file, rank) pairs and algebraic
// notation, and bounds-checked offset application.
package board

import (
	"errors"
	"fmt"
	"strconv"
)

// MaxWidth is the widest board algebraic notation can address (files a-z).
const MaxWidth = 26

// Square is a linear board index. Index 0 is the first file of the first
// (lowest) rank; indices grow along the rank, then up the board.
type Square int

// NoSquare is the out-of-bounds / absent square sentinel.
const NoSquare Square = -1

var ErrInvalidSquare = errors.New("invalid square")

// Color is one of the two sides.
type Color byte

const (
	White Color = iota
	Black
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return c ^ 1
}

// String returns "w" or "b".
func (c Color) String() string {
	if c == White {
		return "w"
	}
	return "b"
}

// Offset is a relative displacement in files and ranks.
type Offset struct {
	File int
	Rank int
}

// Mirror negates both components.
func (o Offset) Mirror() Offset {
	return Offset{File: -o.File, Rank: -o.Rank}
}

// Scale multiplies both components by n.
func (o Offset) Scale(n int) Offset {
	return Offset{File: o.File * n, Rank: o.Rank * n}
}

// ForColor orients an offset written from White's point of view for c.
// Black sees the board reflected across its horizontal axis.
func (o Offset) ForColor(c Color) Offset {
	if c == Black {
		return Offset{File: o.File, Rank: -o.Rank}
	}
	return o
}

// Dimensions describes a board of Width files and Height ranks.
type Dimensions struct {
	Width  int
	Height int
}

// Size returns the number of squares.
func (d Dimensions) Size() int {
	return d.Width * d.Height
}

// Index returns the square at (file, rank). It does not check bounds.
func (d Dimensions) Index(file, rank int) Square {
	return Square(rank*d.Width + file)
}

// File returns the zero-based file of sq.
func (d Dimensions) File(sq Square) int {
	return int(sq) % d.Width
}

// Rank returns the zero-based rank of sq.
func (d Dimensions) Rank(sq Square) int {
	return int(sq) / d.Width
}

// Contains reports whether sq is on the board.
func (d Dimensions) Contains(sq Square) bool {
	return sq >= 0 && int(sq) < d.Size()
}

// Offset applies o to sq. It returns NoSquare when the target file or rank
// falls off the board.
func (d Dimensions) Offset(sq Square, o Offset) Square {
	file := d.File(sq) + o.File
	rank := d.Rank(sq) + o.Rank
	if file < 0 || file >= d.Width || rank < 0 || rank >= d.Height {
		return NoSquare
	}
	return d.Index(file, rank)
}

// Algebraic formats sq as a file letter followed by a 1-based rank number.
// NoSquare formats as "-".
func (d Dimensions) Algebraic(sq Square) string {
	if sq == NoSquare {
		return "-"
	}
	return string(rune('a'+d.File(sq))) + strconv.Itoa(d.Rank(sq)+1)
}

// ParseSquare converts algebraic notation to a square. "-" yields NoSquare.
func (d Dimensions) ParseSquare(s string) (Square, error) {
	if s == "-" {
		return NoSquare, nil
	}
	if len(s) < 2 {
		return NoSquare, fmt.Errorf("%w: %q is too short", ErrInvalidSquare, s)
	}
	if s[0] < 'a' || s[0] > 'z' {
		return NoSquare, fmt.Errorf("%w: %q has no file letter", ErrInvalidSquare, s)
	}
	file := int(s[0] - 'a')
	rank, err := strconv.Atoi(s[1:])
	if err != nil || s[1] < '1' || s[1] > '9' {
		return NoSquare, fmt.Errorf("%w: %q has no rank number", ErrInvalidSquare, s)
	}
	rank--
	if file >= d.Width || rank >= d.Height {
		return NoSquare, fmt.Errorf("%w: %q is off a %dx%d board", ErrInvalidSquare, s, d.Width, d.Height)
	}
	return d.Index(file, rank), nil
}
