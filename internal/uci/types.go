// Package uci reads and writes moves in coordinate notation ("e2e4",
// "e7e8q") and the "position" command that carries a move list. Files are
// single letters, so boards up to 26 files wide are covered; ranks may have
// any number of digits.
package uci

import (
	"errors"

	"chessvariant/internal/board"
)

var (
	ErrInvalidMoveText = errors.New("invalid move text")
	ErrInvalidCommand  = errors.New("invalid position command")
)

// Intent is a move as a user or client names it: two squares and, when a
// pawn reaches the last rank, the letter of the piece it becomes. Whether
// the intent is legal is decided elsewhere.
type Intent struct {
	From      board.Square
	To        board.Square
	Promotion byte // Lowercase symbol, 0 if none
}

// PositionCommand is a decoded "position" command.
type PositionCommand struct {
	FEN   string // Empty means the variant's starting position
	Moves []string
}
