package stroke

import (
	"math"
	"testing"

	"github.com/cwbudde/inkshape/internal/classify"
)

// tracePerimeter feeds a rectangle outline clockwise from the top-left
// corner, ending where it began.
func tracePerimeter(t *Tracker, x0, y0, w, h int) {
	for x := x0; x < x0+w; x++ {
		t.Observe(x, y0)
	}
	for y := y0; y < y0+h; y++ {
		t.Observe(x0+w-1, y)
	}
	for x := x0 + w - 1; x >= x0; x-- {
		t.Observe(x, y0+h-1)
	}
	for y := y0 + h - 1; y >= y0; y-- {
		t.Observe(x0, y)
	}
}

func traceCircle(t *Tracker, cx, cy, r int) {
	for deg := 0; deg <= 360; deg++ {
		rad := float64(deg) * math.Pi / 180
		x := cx + int(math.Round(float64(r)*math.Cos(rad)))
		y := cy + int(math.Round(float64(r)*math.Sin(rad)))
		t.Observe(x, y)
	}
}

func traceTriangle(t *Tracker, x0, y0, w, h int) {
	apexX := x0 + w/2
	// Apex down the left side, across the base, and back up.
	for i := 0; i <= h; i++ {
		t.Observe(apexX-(w/2)*i/h, y0+i)
	}
	for x := x0; x <= x0+w; x++ {
		t.Observe(x, y0+h)
	}
	for i := h; i >= 0; i-- {
		t.Observe(apexX+(w/2)*i/h, y0+i)
	}
	// Return to the start point.
	t.Observe(apexX, y0)
}

func TestOpenStrokeIsBlank(t *testing.T) {
	tr := NewTracker()
	// A straight line drifting far from its start.
	for x := 10; x < 80; x++ {
		tr.Observe(x, 40)
	}
	if tr.Closed() {
		t.Error("open stroke reported closed")
	}
	if got := tr.Classify(); got.Label != classify.None {
		t.Errorf("open stroke classified as %v", got.Label)
	}
}

func TestTooSmallBoxIsBlank(t *testing.T) {
	tr := NewTracker()
	tracePerimeter(tr, 50, 50, 3, 3)
	if got := tr.Classify(); got.Label != classify.None {
		t.Errorf("3x3 loop classified as %v", got.Label)
	}
}

func TestClosedRectangle(t *testing.T) {
	tr := NewTracker()
	tracePerimeter(tr, 20, 30, 50, 30)

	if !tr.Closed() {
		t.Fatal("perimeter trace not closed")
	}
	if flats := tr.FlatSides(); flats < 2 {
		t.Fatalf("rectangle has %d flat sides, want >= 2", flats)
	}
	if got := tr.Classify(); got.Label != classify.Rectangle {
		t.Errorf("label = %v, want rectangle", got.Label)
	}
}

func TestClosedSquare(t *testing.T) {
	tr := NewTracker()
	tracePerimeter(tr, 30, 30, 40, 40)

	if got := tr.Classify(); got.Label != classify.Square {
		t.Errorf("label = %v, want square", got.Label)
	}
}

func TestClosedCircle(t *testing.T) {
	tr := NewTracker()
	traceCircle(tr, 80, 60, 25)

	if !tr.Closed() {
		t.Fatal("circle trace not closed")
	}
	if flats := tr.FlatSides(); flats != 0 {
		t.Fatalf("circle has %d flat sides, want 0", flats)
	}
	if got := tr.Classify(); got.Label != classify.Circle {
		t.Errorf("label = %v, want circle", got.Label)
	}
}

func TestClosedTriangle(t *testing.T) {
	tr := NewTracker()
	traceTriangle(tr, 40, 30, 50, 40)

	if !tr.Closed() {
		t.Fatal("triangle trace not closed")
	}
	if flats := tr.FlatSides(); flats != 1 {
		t.Fatalf("triangle has %d flat sides, want 1", flats)
	}
	if got := tr.Classify(); got.Label != classify.Triangle {
		t.Errorf("label = %v, want triangle", got.Label)
	}
}

func TestCloseToleranceBoundary(t *testing.T) {
	tr := NewTracker()
	tr.Observe(50, 50)
	tr.Observe(50+CloseTolerance, 50)
	if !tr.Closed() {
		t.Error("stroke within tolerance reported open")
	}
	tr.Observe(50+CloseTolerance+1, 50)
	if tr.Closed() {
		t.Error("stroke beyond tolerance reported closed")
	}
}

func TestNewExtremeResetsEdgeSpan(t *testing.T) {
	tr := NewTracker()
	// Run along y=40 first: that edge looks flat.
	for x := 20; x <= 60; x++ {
		tr.Observe(x, 40)
	}
	// Then a single pixel below: the bottom edge moved, its span restarts.
	tr.Observe(40, 41)
	if span := tr.bottom.span(); span != 1 {
		t.Errorf("bottom span after new extreme = %d, want 1", span)
	}
}
