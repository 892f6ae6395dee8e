package perft

import (
	"context"
	"errors"
	"testing"

	"chessvariant/internal/fen"
	"chessvariant/internal/position"
	"chessvariant/internal/variant"
)

func mustState(t *testing.T, name, s string) *position.State {
	t.Helper()
	cfg, err := variant.Builtin(name)
	if err != nil {
		t.Fatalf("Builtin(%s) error: %v", name, err)
	}
	if s == "" {
		s = cfg.StartingPosition()
	}
	st, err := fen.Parse(cfg, s)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", s, err)
	}
	return st
}

var perftTests = []struct {
	name    string
	variant string
	fen     string
	counts  []uint64 // Index i is the count at depth i+1
}{
	{"standard start", variant.Standard, "", []uint64{20, 400, 8902}},
	{"kiwipete", variant.Standard, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", []uint64{48, 2039}},
	{"rook endgame", variant.Standard, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", []uint64{14, 191, 2812}},
	{"promotions", variant.Standard, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []uint64{6, 264}},
	{"castling rights", variant.Standard, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []uint64{44, 1486}},
	{"capablanca start", "capablanca", "", []uint64{28, 784}},
	{"los alamos start", "losalamos", "", []uint64{10, 100}},
}

func TestCount(t *testing.T) {
	ctx := context.Background()
	for _, tt := range perftTests {
		t.Run(tt.name, func(t *testing.T) {
			st := mustState(t, tt.variant, tt.fen)
			before := st.Clone()
			for i, want := range tt.counts {
				got, err := Count(ctx, st, i+1)
				if err != nil {
					t.Fatalf("Count(%d) error: %v", i+1, err)
				}
				if got != want {
					t.Errorf("Count(%d) = %d, want %d", i+1, got, want)
				}
			}
			if !st.Equal(before) {
				t.Error("Count left the position changed")
			}
		})
	}
}

func TestCountDepthZero(t *testing.T) {
	st := mustState(t, variant.Standard, "")
	n, err := Count(context.Background(), st, 0)
	if err != nil || n != 1 {
		t.Errorf("Count(0) = %d, %v, want 1", n, err)
	}
	if _, err := Count(context.Background(), st, -1); err == nil {
		t.Error("Count(-1) should fail")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	for _, tt := range perftTests {
		t.Run(tt.name, func(t *testing.T) {
			st := mustState(t, tt.variant, tt.fen)
			before := st.Clone()
			depth := len(tt.counts)

			for _, workers := range []int{1, 3, 0} {
				got, err := Parallel(ctx, st, depth, workers)
				if err != nil {
					t.Fatalf("Parallel(workers=%d) error: %v", workers, err)
				}
				if want := tt.counts[depth-1]; got != want {
					t.Errorf("Parallel(%d, workers=%d) = %d, want %d", depth, workers, got, want)
				}
			}
			if !st.Equal(before) {
				t.Error("Parallel changed the position")
			}
		})
	}
}

func TestDivide(t *testing.T) {
	st := mustState(t, variant.Standard, "")

	entries, err := Divide(context.Background(), st, 2)
	if err != nil {
		t.Fatalf("Divide() error: %v", err)
	}
	if len(entries) != 20 {
		t.Fatalf("len(entries) = %d, want 20", len(entries))
	}
	if total := Total(entries); total != 400 {
		t.Errorf("Total() = %d, want 400", total)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Move >= entries[i].Move {
			t.Errorf("entries not sorted: %s before %s", entries[i-1].Move, entries[i].Move)
		}
	}
	for _, e := range entries {
		if e.Nodes != 20 {
			t.Errorf("%s: %d nodes, want 20", e.Move, e.Nodes)
		}
	}

	parallel, err := ParallelDivide(context.Background(), st, 2, 4)
	if err != nil {
		t.Fatalf("ParallelDivide() error: %v", err)
	}
	if len(parallel) != len(entries) {
		t.Fatalf("len(ParallelDivide) = %d, want %d", len(parallel), len(entries))
	}
	for i := range entries {
		if parallel[i] != entries[i] {
			t.Errorf("ParallelDivide[%d] = %+v, want %+v", i, parallel[i], entries[i])
		}
	}

	if _, err := Divide(context.Background(), st, 0); err == nil {
		t.Error("Divide(0) should fail")
	}
}

func TestCancelled(t *testing.T) {
	st := mustState(t, variant.Standard, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Count(ctx, st, 3); !errors.Is(err, context.Canceled) {
		t.Errorf("Count() error = %v, want context.Canceled", err)
	}
	if _, err := Parallel(ctx, st, 3, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("Parallel() error = %v, want context.Canceled", err)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if n := DefaultWorkers(); n < 1 {
		t.Errorf("DefaultWorkers() = %d, want >= 1", n)
	}
	if s := DetectHost().FeatureString(); s == "" {
		t.Error("FeatureString() is empty")
	}
}
