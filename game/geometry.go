package game

import "math"

// Tile indices map to grid coordinates as index = y*width + x.

func Coords(index, width int) (x, y int) {
	return index % width, index / width
}

// Distance returns the Euclidean distance between two tile indices.
func Distance(a, b, width int) float64 {
	ax, ay := Coords(a, width)
	bx, by := Coords(b, width)
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return math.Hypot(dx, dy)
}

// Neighbors returns the orthogonally adjacent tile indices of index,
// clipped at the grid edges. No wraparound.
func Neighbors(index, width, height int) []int {
	x, y := Coords(index, width)
	out := make([]int, 0, 4)
	if x > 0 {
		out = append(out, index-1)
	}
	if x < width-1 {
		out = append(out, index+1)
	}
	if y > 0 {
		out = append(out, index-width)
	}
	if y < height-1 {
		out = append(out, index+width)
	}
	return out
}
