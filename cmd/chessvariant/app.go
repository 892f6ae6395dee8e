package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chessvariant/internal/game"
	"chessvariant/internal/movegen"
	"chessvariant/internal/perft"
	"chessvariant/internal/uci"
	"chessvariant/internal/variant"
)

// App holds the variant catalog and host information shared by commands.
type App struct {
	catalog *variant.Catalog
	host    perft.Host
}

// NewApp creates the application, loading built-in and user variants.
func NewApp() *App {
	host := perft.DetectHost()
	slog.Info("detected CPU features",
		"brand", host.Brand, "cores", host.LogicalCores, "features", host.FeatureString())

	catalog := variant.NewCatalog()
	if err := catalog.LoadBuiltin(); err != nil {
		slog.Warn("failed to load built-in variants", "err", err)
	}
	if n := catalog.LoadUser(); n > 0 {
		slog.Info("loaded user variants", "count", n)
	}

	return &App{catalog: catalog, host: host}
}

// ListVariants returns every known variant.
func (a *App) ListVariants() []variant.Info {
	return a.catalog.List()
}

// Variant returns the variant in file if set, otherwise the one named name.
func (a *App) Variant(name, file string) (*variant.Config, error) {
	var (
		cfg *variant.Config
		err error
	)
	if file != "" {
		cfg, err = a.catalog.LoadFile(file)
	} else {
		cfg, err = a.catalog.Resolve(name)
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("variant selected", "name", cfg.Name(), "description", cfg.Description())
	return cfg, nil
}

// Open starts a session from position text (empty for the starting
// position) and plays moves in coordinate notation.
func (a *App) Open(cfg *variant.Config, fen string, moves []string) (*game.Session, error) {
	return game.Replay(cfg, uci.BuildPositionCommand(fen, moves))
}

// MoveInfo is a legal move as reported to the user.
type MoveInfo struct {
	Move   string `json:"move"`
	Castle string `json:"castle,omitempty"`
	Check  bool   `json:"check"`
}

// LegalMoves lists the legal moves of the session's side to move, marking
// those that attack an enemy royal piece.
func (a *App) LegalMoves(s *game.Session) ([]MoveInfo, error) {
	st := s.Snapshot()
	legal, err := movegen.LegalMoves(st)
	if err != nil {
		return nil, err
	}

	dims := st.Dimensions()
	infos := make([]MoveInfo, 0, len(legal))
	for _, m := range legal {
		u, err := st.Make(m)
		if err != nil {
			return nil, fmt.Errorf("make %s: %w", uci.Format(dims, m), err)
		}
		check := movegen.InCheck(st, st.SideToMove())
		st.Undo(u)
		infos = append(infos, MoveInfo{Move: uci.Format(dims, m), Castle: m.Castle, Check: check})
	}
	return infos, nil
}

// PerftResult is the outcome of a perft run.
type PerftResult struct {
	Depth   int           `json:"depth"`
	Nodes   uint64        `json:"nodes"`
	Elapsed time.Duration `json:"elapsed"`
	Divide  []perft.Entry `json:"divide,omitempty"`
}

// NPS returns nodes per second.
func (r PerftResult) NPS() uint64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(r.Nodes) / r.Elapsed.Seconds())
}

// Perft counts nodes to depth from the session's position. With divide set
// the per-move breakdown is kept.
func (a *App) Perft(ctx context.Context, s *game.Session, depth, workers int, divide bool) (PerftResult, error) {
	if workers <= 0 {
		workers = max(a.host.LogicalCores, 1)
	}
	st := s.Snapshot()
	started := time.Now()

	if depth == 0 {
		n, err := perft.Count(ctx, st, 0)
		return PerftResult{Depth: 0, Nodes: n, Elapsed: time.Since(started)}, err
	}

	entries, err := perft.ParallelDivide(ctx, st, depth, workers)
	if err != nil {
		return PerftResult{}, err
	}
	res := PerftResult{Depth: depth, Nodes: perft.Total(entries), Elapsed: time.Since(started)}
	if divide {
		res.Divide = entries
	}
	return res, nil
}
