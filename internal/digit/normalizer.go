package digit

import (
	"github.com/cwbudde/inkshape/internal/canvas"
	"github.com/cwbudde/inkshape/internal/scan"
)

// NormState enumerates the normalizer's machine states.
type NormState uint8

const (
	NormIdle NormState = iota
	NormCompute
	NormSample
	NormWait
	NormDone
)

// Normalizer resamples the bounding-box region onto a 16x16 grid by reading
// one proportionally-placed source pixel per grid cell through the store
// port. Like the scanner it runs at scan priority, one request per tick.
type Normalizer struct {
	storeWidth int

	state NormState
	bbox  scan.BBox
	w, h  int
	idx   int // grid cell index, row-major 0..255
	grid  Grid

	donePulse bool
	out       Grid
}

// NewNormalizer creates a normalizer for a store of the given width.
func NewNormalizer(storeWidth int) *Normalizer {
	return &Normalizer{storeWidth: storeWidth}
}

// Start begins resampling the given bounding box. Ignored unless idle.
func (n *Normalizer) Start(bbox scan.BBox) {
	if n.state != NormIdle {
		return
	}
	n.bbox = bbox
	n.state = NormCompute
}

// Abort cancels an in-flight pass.
func (n *Normalizer) Abort() {
	n.state = NormIdle
	n.donePulse = false
}

// Busy reports whether a pass is in progress.
func (n *Normalizer) Busy() bool { return n.state != NormIdle }

// Done is a one-tick pulse raised when the grid is complete.
func (n *Normalizer) Done() bool { return n.donePulse }

// Grid returns the completed normalized image. Valid from the Done pulse
// until the next Start.
func (n *Normalizer) Grid() Grid { return n.out }

// sourceAddr maps the current grid cell onto a store address: the box is
// divided into 16 equal bands per axis.
func (n *Normalizer) sourceAddr() int {
	gx := n.idx % GridSize
	gy := n.idx / GridSize
	sx := n.bbox.MinX + (n.w*gx)>>4
	sy := n.bbox.MinY + (n.h*gy)>>4
	return sy*n.storeWidth + sx
}

// Submit registers this tick's sample read, when the machine is at Sample.
func (n *Normalizer) Submit(p *canvas.Port) {
	if n.state != NormSample {
		return
	}
	_ = p.Submit(canvas.SourceScan, canvas.Request{Op: canvas.OpRead, Addr: n.sourceAddr()})
}

// Advance steps the machine after a port Step.
func (n *Normalizer) Advance(admitted canvas.Source, ok bool, p *canvas.Port) {
	n.donePulse = false

	switch n.state {
	case NormIdle:

	case NormCompute:
		n.w = n.bbox.Width()
		n.h = n.bbox.Height()
		n.idx = 0
		n.grid = Grid{}
		n.state = NormSample

	case NormSample:
		if ok && admitted == canvas.SourceScan {
			n.state = NormWait
		}

	case NormWait:
		if bit, ready := p.Result(canvas.SourceScan); ready {
			n.grid.Set(n.idx%GridSize, n.idx/GridSize, bit)
			n.idx++
			if n.idx >= GridSize*GridSize {
				n.state = NormDone
			} else {
				n.state = NormSample
			}
		}

	case NormDone:
		n.out = n.grid
		n.donePulse = true
		n.state = NormIdle
	}
}

// Resample is the port-free equivalent of a full normalizer pass. It serves
// as the oracle the normalizer's tick-driven output is checked against.
func Resample(bm *canvas.Bitmap, bbox scan.BBox) Grid {
	var g Grid
	w, h := bbox.Width(), bbox.Height()
	for gy := 0; gy < GridSize; gy++ {
		for gx := 0; gx < GridSize; gx++ {
			sx := bbox.MinX + (w*gx)>>4
			sy := bbox.MinY + (h*gy)>>4
			g.Set(gx, gy, bm.Pixel(sx, sy))
		}
	}
	return g
}
