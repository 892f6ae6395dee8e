package perft

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"chessvariant/internal/movegen"
	"chessvariant/internal/position"
	"chessvariant/internal/uci"
)

func logger() *slog.Logger {
	return slog.Default().With("component", "perft")
}

// ParallelDivide is Divide with the root moves spread over workers
// goroutines. Each worker searches its own Clone of st, so st is only read.
// workers <= 0 uses DefaultWorkers.
func ParallelDivide(ctx context.Context, st *position.State, depth, workers int) ([]Entry, error) {
	if depth < 1 {
		return Divide(ctx, st, depth)
	}
	if workers <= 0 {
		workers = DefaultWorkers()
	}

	root := st.Clone()
	legal, err := movegen.LegalMoves(root)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	logger().Debug("perft fan-out", "depth", depth, "roots", len(legal), "workers", workers)

	dims := st.Dimensions()
	entries := make([]Entry, len(legal))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range legal {
		g.Go(func() error {
			local := root.Clone()
			if _, err := local.Make(m); err != nil {
				return err
			}
			n, err := count(ctx, local, depth-1)
			if err != nil {
				return err
			}
			entries[i] = Entry{Move: uci.Format(dims, m), Nodes: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortEntries(entries)
	logger().Debug("perft done", "depth", depth, "nodes", Total(entries), "elapsed", time.Since(started))
	return entries, nil
}

// Parallel is Count spread over workers goroutines.
func Parallel(ctx context.Context, st *position.State, depth, workers int) (uint64, error) {
	if depth < 1 {
		return Count(ctx, st, depth)
	}
	entries, err := ParallelDivide(ctx, st, depth, workers)
	if err != nil {
		return 0, err
	}
	return Total(entries), nil
}
