package board

import (
	"errors"
	"testing"
)

var std = Dimensions{Width: 8, Height: 8}

func TestSquareConversion(t *testing.T) {
	tests := []struct {
		sq  Square
		str string
	}{
		{0, "a1"},
		{7, "h1"},
		{8, "a2"},
		{63, "h8"},
		{27, "d4"},
		{36, "e5"},
		{NoSquare, "-"},
	}

	for _, tc := range tests {
		got := std.Algebraic(tc.sq)
		if got != tc.str {
			t.Errorf("Algebraic(%d) = %q, want %q", tc.sq, got, tc.str)
		}

		gotSq, err := std.ParseSquare(tc.str)
		if err != nil {
			t.Errorf("ParseSquare(%q) error: %v", tc.str, err)
			continue
		}
		if gotSq != tc.sq {
			t.Errorf("ParseSquare(%q) = %d, want %d", tc.str, gotSq, tc.sq)
		}
	}
}

func TestNonStandardDimensions(t *testing.T) {
	d := Dimensions{Width: 10, Height: 12}

	if d.Size() != 120 {
		t.Errorf("Size() = %d, want 120", d.Size())
	}

	sq, err := d.ParseSquare("j12")
	if err != nil {
		t.Fatalf("ParseSquare(j12) error: %v", err)
	}
	if sq != 119 {
		t.Errorf("ParseSquare(j12) = %d, want 119", sq)
	}
	if d.File(sq) != 9 || d.Rank(sq) != 11 {
		t.Errorf("File/Rank(j12) = %d/%d, want 9/11", d.File(sq), d.Rank(sq))
	}
	if got := d.Algebraic(d.Index(2, 9)); got != "c10" {
		t.Errorf("Algebraic(c10) = %q, want c10", got)
	}
}

func TestParseSquareInvalid(t *testing.T) {
	for _, s := range []string{"", "a", "i1", "a9", "a0", "A1", "1a", "a-1", "aa"} {
		if _, err := std.ParseSquare(s); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) error = %v, want ErrInvalidSquare", s, err)
		}
	}
}

func TestOffset(t *testing.T) {
	e4 := std.Index(4, 3)

	tests := []struct {
		name string
		from Square
		off  Offset
		want Square
	}{
		{"knight jump", e4, Offset{1, 2}, std.Index(5, 5)},
		{"one step down", e4, Offset{0, -1}, std.Index(4, 2)},
		{"off the right edge", std.Index(7, 0), Offset{1, 0}, NoSquare},
		{"off the left edge", std.Index(0, 4), Offset{-1, 1}, NoSquare},
		{"off the top", std.Index(3, 7), Offset{0, 1}, NoSquare},
		{"off the bottom", std.Index(3, 0), Offset{0, -2}, NoSquare},
		{"no wrap to next rank", std.Index(7, 3), Offset{2, 0}, NoSquare},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := std.Offset(tc.from, tc.off); got != tc.want {
				t.Errorf("Offset(%s, %v) = %d, want %d", std.Algebraic(tc.from), tc.off, got, tc.want)
			}
		})
	}
}

func TestOffsetOrientation(t *testing.T) {
	o := Offset{File: 1, Rank: 1}
	if got := o.ForColor(White); got != o {
		t.Errorf("ForColor(White) = %v, want %v", got, o)
	}
	if got := o.ForColor(Black); got != (Offset{1, -1}) {
		t.Errorf("ForColor(Black) = %v, want {1 -1}", got)
	}
	if got := o.Mirror(); got != (Offset{-1, -1}) {
		t.Errorf("Mirror() = %v, want {-1 -1}", got)
	}
	if got := (Offset{0, 1}).Scale(2); got != (Offset{0, 2}) {
		t.Errorf("Scale(2) = %v, want {0 2}", got)
	}
}

func TestColor(t *testing.T) {
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Error("Opposite() does not swap colors")
	}
	if White.String() != "w" || Black.String() != "b" {
		t.Errorf("String() = %q/%q, want w/b", White.String(), Black.String())
	}
}
