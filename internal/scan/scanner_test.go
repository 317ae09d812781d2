package scan

import (
	"testing"

	"github.com/cwbudde/inkshape/internal/canvas"
)

// runScan drives a scanner to completion against the port and returns the
// features it produced.
func runScan(t *testing.T, s *Scanner, p *canvas.Port) Features {
	t.Helper()
	s.Start()
	// Worst case per pixel: addr + latency + proc, plus init/done overhead.
	limit := p.Bitmap().Size()*(canvas.ReadLatency+2) + 4
	for i := 0; i < limit; i++ {
		s.Submit(p)
		src, ok := p.Step()
		s.Advance(src, ok, p)
		if s.Done() {
			return s.Features()
		}
	}
	t.Fatal("scan did not complete within tick budget")
	return Features{}
}

func TestScanEmptyCanvas(t *testing.T) {
	bm := canvas.NewBitmap(16, 12)
	p := canvas.NewPort(bm)
	s := NewScanner(16, 12)

	f := runScan(t, s, p)
	if !f.Empty {
		t.Error("empty canvas not flagged empty")
	}
	if f.PixelCount != 0 {
		t.Errorf("PixelCount = %d, want 0", f.PixelCount)
	}
}

func TestScanBelowNoiseThresholdIsEmpty(t *testing.T) {
	bm := canvas.NewBitmap(32, 32)
	for i := 0; i < DefaultMinInk-1; i++ {
		bm.SetPixel(i, 5, true)
	}
	p := canvas.NewPort(bm)
	s := NewScanner(32, 32)

	f := runScan(t, s, p)
	if f.PixelCount != DefaultMinInk-1 {
		t.Errorf("PixelCount = %d, want %d", f.PixelCount, DefaultMinInk-1)
	}
	if !f.Empty {
		t.Error("below-threshold canvas not flagged empty")
	}
}

func TestScanBoundingBoxInvariant(t *testing.T) {
	bm := canvas.NewBitmap(40, 30)
	// A 10x6 block of ink.
	for y := 8; y < 14; y++ {
		for x := 5; x < 15; x++ {
			bm.SetPixel(x, y, true)
		}
	}
	p := canvas.NewPort(bm)
	s := NewScanner(40, 30)

	f := runScan(t, s, p)
	if f.Empty {
		t.Fatal("60-pixel block flagged empty")
	}
	if f.BBox.MinX > f.BBox.MaxX || f.BBox.MinY > f.BBox.MaxY {
		t.Fatalf("degenerate bbox: %+v", f.BBox)
	}
	if got := f.BBox.Width(); got != 10 {
		t.Errorf("bbox width = %d, want 10", got)
	}
	if got := f.BBox.Height(); got != 6 {
		t.Errorf("bbox height = %d, want 6", got)
	}
	if f.PixelCount != 60 {
		t.Errorf("PixelCount = %d, want 60", f.PixelCount)
	}
	if f.Perimeter != f.PixelCount {
		t.Errorf("outline perimeter = %d, want pixel count %d", f.Perimeter, f.PixelCount)
	}
}

func TestScanMatchesExtractOracle(t *testing.T) {
	bm := canvas.NewBitmap(24, 24)
	// Outline of an 11x11 square.
	for i := 6; i <= 16; i++ {
		bm.SetPixel(i, 6, true)
		bm.SetPixel(i, 16, true)
		bm.SetPixel(6, i, true)
		bm.SetPixel(16, i, true)
	}
	p := canvas.NewPort(bm)
	s := NewScanner(24, 24)

	got := runScan(t, s, p)
	want := Extract(bm, DefaultMinInk)
	if got != want {
		t.Errorf("scanner = %+v, oracle = %+v", got, want)
	}
}

func TestScanIdempotent(t *testing.T) {
	bm := canvas.NewBitmap(20, 20)
	for i := 2; i < 18; i++ {
		bm.SetPixel(i, 9, true)
		bm.SetPixel(i, 10, true)
	}
	p := canvas.NewPort(bm)
	s := NewScanner(20, 20)

	first := runScan(t, s, p)
	second := runScan(t, s, p)
	if first != second {
		t.Errorf("repeat scan differs: %+v vs %+v", first, second)
	}
}

func TestScanStalledByDrawContention(t *testing.T) {
	bm := canvas.NewBitmap(8, 8)
	bm.SetPixel(0, 0, true)
	p := canvas.NewPort(bm)
	s := NewScanner(8, 8)
	s.SetMinInk(1)
	s.Start()

	// Tick 1: init.
	s.Submit(p)
	src, ok := p.Step()
	s.Advance(src, ok, p)
	if s.State() != StateScanAddr {
		t.Fatalf("state after init = %v, want scan-addr", s.State())
	}

	// Tick 2: scan loses to a draw write and must hold at ScanAddr.
	s.Submit(p)
	p.Submit(canvas.SourceDraw, canvas.Request{Op: canvas.OpWrite, Addr: 7, Bit: true})
	src, ok = p.Step()
	if src != canvas.SourceDraw {
		t.Fatalf("admitted %v, want draw", src)
	}
	s.Advance(src, ok, p)
	if s.State() != StateScanAddr {
		t.Fatalf("scanner advanced past lost arbitration: %v", s.State())
	}

	// Tick 3: retry wins.
	s.Submit(p)
	src, ok = p.Step()
	s.Advance(src, ok, p)
	if s.State() != StateScanWait {
		t.Fatalf("state after retry = %v, want scan-wait", s.State())
	}
}

func TestScanAbortDiscardsPartialResults(t *testing.T) {
	bm := canvas.NewBitmap(8, 8)
	bm.SetPixel(1, 1, true)
	p := canvas.NewPort(bm)
	s := NewScanner(8, 8)
	s.Start()

	for i := 0; i < 10; i++ {
		s.Submit(p)
		src, ok := p.Step()
		s.Advance(src, ok, p)
	}
	s.Abort()
	p.DropReads(canvas.SourceScan)

	if s.Busy() {
		t.Error("scanner busy after abort")
	}
	if s.Done() {
		t.Error("abort surfaced a done pulse")
	}
}
