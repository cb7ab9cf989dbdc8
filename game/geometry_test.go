package game

import (
	"math"
	"testing"
)

func TestCoords(t *testing.T) {
	x, y := Coords(0, 20)
	if x != 0 || y != 0 {
		t.Fatalf("Coords(0) = (%d,%d), want (0,0)", x, y)
	}
	x, y = Coords(399, 20)
	if x != 19 || y != 19 {
		t.Fatalf("Coords(399) = (%d,%d), want (19,19)", x, y)
	}
	x, y = Coords(21, 20)
	if x != 1 || y != 1 {
		t.Fatalf("Coords(21) = (%d,%d), want (1,1)", x, y)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 3, 20); d != 3 {
		t.Fatalf("Distance(0,3) = %f, want 3", d)
	}
	// (0,0) to (19,19)
	want := math.Hypot(19, 19)
	if d := Distance(0, 399, 20); math.Abs(d-want) > 1e-9 {
		t.Fatalf("Distance(0,399) = %f, want %f", d, want)
	}
}

func TestNeighborsAtCorners(t *testing.T) {
	// Top-left corner has exactly two neighbors.
	n := Neighbors(0, 20, 20)
	if len(n) != 2 {
		t.Fatalf("Neighbors(0) = %v, want 2 entries", n)
	}
	// Bottom-right corner.
	n = Neighbors(399, 20, 20)
	if len(n) != 2 {
		t.Fatalf("Neighbors(399) = %v, want 2 entries", n)
	}
}

func TestNeighborsNoWraparound(t *testing.T) {
	// Index 19 is the right edge of row 0; index 20 starts row 1 and
	// must not appear as a neighbor.
	for _, n := range Neighbors(19, 20, 20) {
		if n == 20 {
			t.Fatalf("Neighbors(19) wrapped around the row edge: %v", Neighbors(19, 20, 20))
		}
	}
	n := Neighbors(19, 20, 20)
	if len(n) != 2 {
		t.Fatalf("Neighbors(19) = %v, want 2 entries (left, below)", n)
	}
}

func TestNeighborsInterior(t *testing.T) {
	n := Neighbors(21, 20, 20)
	if len(n) != 4 {
		t.Fatalf("Neighbors(21) = %v, want 4 entries", n)
	}
}
