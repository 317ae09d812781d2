// Package digit recognizes hand-drawn digits by resampling the stroke's
// bounding box onto a fixed 16x16 binary grid and scoring it against ten
// fixed templates with XNOR popcount. The best-scoring template wins; ties
// go to the lowest digit.
package digit

import "math/bits"

// GridSize is the edge length of the normalized image and the templates.
const GridSize = 16

// MaxScore is the similarity of two identical grids.
const MaxScore = GridSize * GridSize

// Grid is a 16x16 binary image, one uint16 of column bits per row.
type Grid [GridSize]uint16

// Set stores the bit at (x, y).
func (g *Grid) Set(x, y int, ink bool) {
	if ink {
		g[y] |= 1 << uint(x)
	} else {
		g[y] &^= 1 << uint(x)
	}
}

// Get returns the bit at (x, y).
func (g *Grid) Get(x, y int) bool {
	return g[y]&(1<<uint(x)) != 0
}

// PixelCount returns the number of ink cells.
func (g *Grid) PixelCount() int {
	n := 0
	for _, row := range g {
		n += bits.OnesCount16(row)
	}
	return n
}

// Similarity counts the bit positions where a and b agree, 0..256.
func Similarity(a, b Grid) int {
	score := 0
	for i := range a {
		score += GridSize - bits.OnesCount16(a[i]^b[i])
	}
	return score
}
