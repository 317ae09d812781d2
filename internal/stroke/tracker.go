// Package stroke classifies a shape while it is being drawn, with no scan
// pass: it grows the bounding box incrementally, tracks how much of each
// box edge the stroke actually touches, and watches for the stroke closing
// back on its start point. Flat edges separate straight-sided shapes from
// curves.
package stroke

import "github.com/cwbudde/inkshape/internal/classify"

// Reference tolerances.
const (
	// CloseTolerance is the per-axis distance from the start point within
	// which the stroke counts as closed.
	CloseTolerance = 15
	// MinExtent is the minimum box width and height for a classification.
	MinExtent = 5
)

// edgeSpan records the range of the perpendicular coordinate observed while
// sitting exactly on one bounding-box extreme. A wide span means the stroke
// runs along that edge, i.e. the side is flat.
type edgeSpan struct {
	min, max int
	seen     bool
}

func (e *edgeSpan) reset() { *e = edgeSpan{} }

func (e *edgeSpan) update(v int) {
	if !e.seen {
		e.min, e.max, e.seen = v, v, true
		return
	}
	if v < e.min {
		e.min = v
	}
	if v > e.max {
		e.max = v
	}
}

func (e *edgeSpan) span() int {
	if !e.seen {
		return 0
	}
	return e.max - e.min + 1
}

// Tracker accumulates stroke state pixel by pixel. Output is recomputed
// from the running state on demand, not staged.
type Tracker struct {
	started bool
	startX  int
	startY  int
	lastX   int
	lastY   int

	minX, maxX int
	minY, maxY int

	// Perpendicular spans observed at each box extreme. A new extreme
	// restarts its edge's span: the old edge no longer exists.
	left, right edgeSpan // y-spans at minX / maxX
	top, bottom edgeSpan // x-spans at minY / maxY
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Reset discards all stroke state, ready for a new drawing.
func (t *Tracker) Reset() { *t = Tracker{} }

// Observe feeds one drawn ink pixel into the tracker. The very first pixel
// is latched as the stroke's start point.
func (t *Tracker) Observe(x, y int) {
	if !t.started {
		t.started = true
		t.startX, t.startY = x, y
		t.minX, t.maxX = x, x
		t.minY, t.maxY = y, y
	}
	t.lastX, t.lastY = x, y

	if x < t.minX {
		t.minX = x
		t.left.reset()
	}
	if x > t.maxX {
		t.maxX = x
		t.right.reset()
	}
	if y < t.minY {
		t.minY = y
		t.top.reset()
	}
	if y > t.maxY {
		t.maxY = y
		t.bottom.reset()
	}

	if x == t.minX {
		t.left.update(y)
	}
	if x == t.maxX {
		t.right.update(y)
	}
	if y == t.minY {
		t.top.update(x)
	}
	if y == t.maxY {
		t.bottom.update(x)
	}
}

// Closed reports whether the most recent pixel lies within CloseTolerance
// of the start point on both axes.
func (t *Tracker) Closed() bool {
	if !t.started {
		return false
	}
	return abs(t.lastX-t.startX) <= CloseTolerance &&
		abs(t.lastY-t.startY) <= CloseTolerance
}

// FlatSides counts box edges whose perpendicular ink span exceeds half the
// box's opposite dimension.
func (t *Tracker) FlatSides() int {
	if !t.started {
		return 0
	}
	w := t.maxX - t.minX + 1
	h := t.maxY - t.minY + 1
	n := 0
	if t.left.span() > h/2 {
		n++
	}
	if t.right.span() > h/2 {
		n++
	}
	if t.top.span() > w/2 {
		n++
	}
	if t.bottom.span() > w/2 {
		n++
	}
	return n
}

// Classify recomputes the incremental verdict from current state: blank
// while the stroke is open or too small, otherwise flat-side counting.
func (t *Tracker) Classify() classify.Result {
	if !t.started || !t.Closed() {
		return classify.Result{Label: classify.None, Confidence: 0}
	}
	w := t.maxX - t.minX + 1
	h := t.maxY - t.minY + 1
	if w < MinExtent && h < MinExtent {
		return classify.Result{Label: classify.None, Confidence: 0}
	}

	switch flats := t.FlatSides(); {
	case flats >= 2:
		if classify.SquareAspect(w, h, 3, 10) {
			return classify.Result{Label: classify.Square, Confidence: 180}
		}
		return classify.Result{Label: classify.Rectangle, Confidence: 180}
	case flats == 1:
		return classify.Result{Label: classify.Triangle, Confidence: 170}
	default:
		return classify.Result{Label: classify.Circle, Confidence: 170}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
