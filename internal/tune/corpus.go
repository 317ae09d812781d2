// Package tune searches the classifier's threshold bands with the mayfly
// optimizer, scoring candidate band sets against a corpus of synthetic
// labeled strokes. The band intervals are heuristics, not derived
// constants; treating them as free parameters is the supported way to
// adjust them.
package tune

import (
	"math/rand"

	"github.com/cwbudde/inkshape/internal/canvas"
	"github.com/cwbudde/inkshape/internal/classify"
	"github.com/cwbudde/inkshape/internal/scan"
)

// Sample is one labeled synthetic stroke, reduced to its feature set.
type Sample struct {
	Label    classify.Label
	Features scan.Features
}

// CorpusConfig controls synthetic stroke generation.
type CorpusConfig struct {
	Width    int
	Height   int
	PerShape int
	Seed     int64
	// Filled selects solid shapes (fill-ratio strategy) over thin
	// outlines (compactness strategy).
	Filled bool
}

// BuildCorpus rasterizes PerShape jittered instances of each shape and
// extracts their features.
func BuildCorpus(cfg CorpusConfig) []Sample {
	if cfg.Width <= 0 {
		cfg.Width = canvas.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = canvas.Height
	}
	if cfg.PerShape <= 0 {
		cfg.PerShape = 25
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	shapes := []classify.Label{classify.Circle, classify.Square, classify.Rectangle, classify.Triangle}
	samples := make([]Sample, 0, len(shapes)*cfg.PerShape)
	for _, label := range shapes {
		for i := 0; i < cfg.PerShape; i++ {
			bm := canvas.NewBitmap(cfg.Width, cfg.Height)
			drawShape(bm, rng, label, cfg.Filled)
			samples = append(samples, Sample{
				Label:    label,
				Features: scan.Extract(bm, scan.DefaultMinInk),
			})
		}
	}
	return samples
}

func drawShape(bm *canvas.Bitmap, rng *rand.Rand, label classify.Label, filled bool) {
	w, h := bm.Width(), bm.Height()

	switch label {
	case classify.Circle:
		r := 12 + rng.Intn(h/4)
		cx := r + 2 + rng.Intn(w-2*r-4)
		cy := r + 2 + rng.Intn(h-2*r-4)
		if filled {
			fillDisc(bm, cx, cy, r)
		} else {
			drawRing(bm, cx, cy, r)
		}

	case classify.Square:
		side := 20 + rng.Intn(h/2)
		x0 := 1 + rng.Intn(w-side-2)
		y0 := 1 + rng.Intn(h-side-2)
		// Hand wobble: up to ~10 percent aspect skew stays square-ish.
		wob := side + rng.Intn(side/10+1)
		if y0+wob >= h {
			wob = side
		}
		if filled {
			fillBox(bm, x0, y0, side, wob)
		} else {
			drawBox(bm, x0, y0, side, wob)
		}

	case classify.Rectangle:
		rw := 40 + rng.Intn(w/2)
		rh := rw/2 - rng.Intn(rw/4+1)
		if rh < 10 {
			rh = 10
		}
		x0 := 1 + rng.Intn(w-rw-2)
		y0 := 1 + rng.Intn(h-rh-2)
		if filled {
			fillBox(bm, x0, y0, rw, rh)
		} else {
			drawBox(bm, x0, y0, rw, rh)
		}

	case classify.Triangle:
		// Triangles are drawn clearly oblong: at matching stroke density
		// a square-aspect outline scores in the ring's compactness range.
		th := 24 + rng.Intn(18)
		tw := 2*th + rng.Intn(th)
		x0 := 1 + rng.Intn(w-tw-2)
		y0 := 1 + rng.Intn(h-th-2)
		if filled {
			fillTri(bm, x0, y0, tw, th)
		} else {
			drawTri(bm, x0, y0, tw, th)
		}
	}
}

func fillDisc(bm *canvas.Bitmap, cx, cy, r int) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r && bm.InBounds(cx+x, cy+y) {
				bm.SetPixel(cx+x, cy+y, true)
			}
		}
	}
}

// drawRing rasterizes a single-pixel circle outline. The stroke density
// matches the outline band calibration: one ink pixel per unit of boundary.
func drawRing(bm *canvas.Bitmap, cx, cy, r int) {
	inner := (r - 1) * (r - 1)
	outer := r * r
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			d := x*x + y*y
			if d <= outer && d > inner {
				setInk(bm, cx+x, cy+y)
			}
		}
	}
}

func fillBox(bm *canvas.Bitmap, x0, y0, w, h int) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			if bm.InBounds(x, y) {
				bm.SetPixel(x, y, true)
			}
		}
	}
}

// drawBox rasterizes a single-pixel rectangle outline.
func drawBox(bm *canvas.Bitmap, x0, y0, w, h int) {
	for x := x0; x < x0+w; x++ {
		setInk(bm, x, y0)
		setInk(bm, x, y0+h-1)
	}
	for y := y0; y < y0+h; y++ {
		setInk(bm, x0, y)
		setInk(bm, x0+w-1, y)
	}
}

func fillTri(bm *canvas.Bitmap, x0, y0, w, h int) {
	for row := 0; row < h; row++ {
		rowW := (w*row)/h + 1
		start := x0 + (w-rowW)/2
		for x := start; x < start+rowW; x++ {
			if bm.InBounds(x, y0+row) {
				bm.SetPixel(x, y0+row, true)
			}
		}
	}
}

// drawTri rasterizes a single-pixel triangle outline: apex top-center, two
// slanted sides and a flat base.
func drawTri(bm *canvas.Bitmap, x0, y0, w, h int) {
	apex := x0 + w/2
	drawLine(bm, apex, y0, x0, y0+h-1)
	drawLine(bm, apex, y0, x0+w-1, y0+h-1)
	drawLine(bm, x0, y0+h-1, x0+w-1, y0+h-1)
}

// drawLine is a single-pixel Bresenham line.
func drawLine(bm *canvas.Bitmap, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setInk(bm, x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func setInk(bm *canvas.Bitmap, x, y int) {
	if bm.InBounds(x, y) {
		bm.SetPixel(x, y, true)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
