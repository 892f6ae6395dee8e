// Package perft counts the leaf nodes of the legal move tree. The counts
// are the standard way to check a move generator against known values.
package perft

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"chessvariant/internal/movegen"
	"chessvariant/internal/position"
	"chessvariant/internal/uci"
)

// Entry is the node count below one root move.
type Entry struct {
	Move  string
	Nodes uint64
}

// Count returns the number of legal move sequences of length depth from st.
// Depth 0 counts the position itself. st is restored before Count returns.
func Count(ctx context.Context, st *position.State, depth int) (uint64, error) {
	if depth < 0 {
		return 0, fmt.Errorf("negative depth %d", depth)
	}
	return count(ctx, st, depth)
}

// Divide returns the count below each root move, sorted by move text.
func Divide(ctx context.Context, st *position.State, depth int) ([]Entry, error) {
	if depth < 1 {
		return nil, fmt.Errorf("divide needs depth >= 1, got %d", depth)
	}
	legal, err := movegen.LegalMoves(st)
	if err != nil {
		return nil, err
	}

	dims := st.Dimensions()
	entries := make([]Entry, 0, len(legal))
	for _, m := range legal {
		u, err := st.Make(m)
		if err != nil {
			return nil, err
		}
		n, err := count(ctx, st, depth-1)
		st.Undo(u)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Move: uci.Format(dims, m), Nodes: n})
	}
	sortEntries(entries)
	return entries, nil
}

// Total sums the node counts of entries.
func Total(entries []Entry) uint64 {
	var n uint64
	for _, e := range entries {
		n += e.Nodes
	}
	return n
}

func count(ctx context.Context, st *position.State, depth int) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}
	if depth > 1 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
	}

	legal, err := movegen.LegalMoves(st)
	if err != nil {
		return 0, err
	}
	if depth == 1 {
		return uint64(len(legal)), nil
	}

	var nodes uint64
	for _, m := range legal {
		u, err := st.Make(m)
		if err != nil {
			return 0, err
		}
		n, err := count(ctx, st, depth-1)
		st.Undo(u)
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		return strings.Compare(a.Move, b.Move)
	})
}
