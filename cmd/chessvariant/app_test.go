package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestListVariants(t *testing.T) {
	app := NewApp()
	names := map[string]bool{}
	for _, v := range app.ListVariants() {
		names[v.Name] = true
	}
	for _, want := range []string{"standard", "capablanca", "losalamos"} {
		if !names[want] {
			t.Errorf("ListVariants() missing %s", want)
		}
	}
}

func TestLegalMovesMarksChecks(t *testing.T) {
	app := NewApp()
	cfg, err := app.Variant("standard", "")
	if err != nil {
		t.Fatalf("Variant() error: %v", err)
	}
	s, err := app.Open(cfg, "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1", nil)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	infos, err := app.LegalMoves(s)
	if err != nil {
		t.Fatalf("LegalMoves() error: %v", err)
	}
	seen := map[string]MoveInfo{}
	for _, m := range infos {
		seen[m.Move] = m
	}
	if m, ok := seen["a1a8"]; !ok || !m.Check {
		t.Errorf("a1a8 = %+v, want a checking move", m)
	}
	if m, ok := seen["e1c1"]; !ok || m.Castle != "Q" {
		t.Errorf("e1c1 = %+v, want castle Q", m)
	}
	if m := seen["a1a2"]; m.Check {
		t.Error("a1a2 marked as check")
	}
}

func TestPerft(t *testing.T) {
	app := NewApp()
	cfg, err := app.Variant("standard", "")
	if err != nil {
		t.Fatalf("Variant() error: %v", err)
	}
	s, err := app.Open(cfg, "", []string{"e2e4"})
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	res, err := app.Perft(context.Background(), s, 2, 2, true)
	if err != nil {
		t.Fatalf("Perft() error: %v", err)
	}
	if res.Nodes != 600 {
		t.Errorf("Nodes = %d, want 600", res.Nodes)
	}
	if len(res.Divide) != 20 {
		t.Errorf("len(Divide) = %d, want 20", len(res.Divide))
	}
}

func TestRun(t *testing.T) {
	app := NewApp()
	tests := []struct {
		command string
		args    []string
		want    string
	}{
		{"fen", nil, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1\n"},
		{"play", []string{"e2e4", "e7e5"}, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2\nposition startpos moves e2e4 e7e5\n"},
		{"moves", nil, "20 moves\n"},
		{"perft", nil, "depth 3: 8902 nodes"},
		{"variants", nil, "capablanca"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(context.Background(), app, tt.command, tt.args, &out); err != nil {
				t.Fatalf("run(%s) error: %v", tt.command, err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("run(%s) output = %q, want it to contain %q", tt.command, out.String(), tt.want)
			}
		})
	}
}

func TestRunErrors(t *testing.T) {
	app := NewApp()
	tests := []struct {
		command string
		args    []string
	}{
		{"play", []string{"e2e5"}},
		{"fen", []string{"extra"}},
		{"bogus", nil},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if err := run(context.Background(), app, tt.command, tt.args, &out); err == nil {
			t.Errorf("run(%s, %v) succeeded, want an error", tt.command, tt.args)
		}
	}
}
