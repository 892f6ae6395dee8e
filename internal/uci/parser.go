package uci

import (
	"fmt"
	"strings"
)

// fenFields is the number of space-separated fields in a position string.
const fenFields = 6

// ParsePositionCommand decodes a line of the form
//
//	position startpos [moves m1 m2 ...]
//	position fen <six fields> [moves m1 m2 ...]
//
// The move texts are returned as written; they are checked when played.
func ParsePositionCommand(line string) (PositionCommand, error) {
	parts := strings.Fields(line)
	if len(parts) < 2 || parts[0] != "position" {
		return PositionCommand{}, fmt.Errorf("%w: %q", ErrInvalidCommand, line)
	}

	var cmd PositionCommand
	i := 2
	switch parts[1] {
	case "startpos":
	case "fen":
		if len(parts) < 2+fenFields {
			return PositionCommand{}, fmt.Errorf("%w: fen needs %d fields", ErrInvalidCommand, fenFields)
		}
		cmd.FEN = strings.Join(parts[2:2+fenFields], " ")
		i = 2 + fenFields
	default:
		return PositionCommand{}, fmt.Errorf("%w: unknown keyword %q", ErrInvalidCommand, parts[1])
	}

	if i == len(parts) {
		return cmd, nil
	}
	if parts[i] != "moves" {
		return PositionCommand{}, fmt.Errorf("%w: unexpected %q", ErrInvalidCommand, parts[i])
	}
	cmd.Moves = parts[i+1:]
	return cmd, nil
}

// BuildPositionCommand constructs a "position" command string.
func BuildPositionCommand(fen string, moves []string) string {
	var parts []string
	parts = append(parts, "position")

	if fen == "" || fen == "startpos" {
		parts = append(parts, "startpos")
	} else {
		parts = append(parts, "fen", fen)
	}

	if len(moves) > 0 {
		parts = append(parts, "moves")
		parts = append(parts, moves...)
	}

	return strings.Join(parts, " ")
}
