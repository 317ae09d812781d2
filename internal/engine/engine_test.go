package engine

import (
	"testing"

	"github.com/cwbudde/inkshape/internal/canvas"
	"github.com/cwbudde/inkshape/internal/classify"
	"github.com/cwbudde/inkshape/internal/digit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShapeEngine(t *testing.T) *Engine {
	t.Helper()
	return New(Config{Mode: ModeShape})
}

func blitRect(bm *canvas.Bitmap, x0, y0, w, h int) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			bm.SetPixel(x, y, true)
		}
	}
}

func TestEmptyCanvasYieldsNone(t *testing.T) {
	e := newShapeEngine(t)
	res, err := e.RunRecognition()
	require.NoError(t, err)
	assert.Equal(t, classify.None, res.Shape)
	assert.Equal(t, uint8(0), res.Confidence)
	assert.True(t, res.Features.Empty)
}

func TestClearThenScanIsEmpty(t *testing.T) {
	e := newShapeEngine(t)
	bm := canvas.NewBitmap(e.Width(), e.Height())
	blitRect(bm, 30, 30, 40, 40)
	require.NoError(t, e.LoadBitmap(bm))

	require.NoError(t, e.RunClear())

	res, err := e.RunRecognition()
	require.NoError(t, err)
	assert.True(t, res.Features.Empty)
	assert.Equal(t, classify.None, res.Shape)
}

func TestFilledSquareEndToEnd(t *testing.T) {
	e := newShapeEngine(t)
	bm := canvas.NewBitmap(e.Width(), e.Height())
	blitRect(bm, 30, 30, 40, 40)
	require.NoError(t, e.LoadBitmap(bm))

	res, err := e.RunRecognition()
	require.NoError(t, err)
	assert.Equal(t, classify.Square, res.Shape)
	assert.GreaterOrEqual(t, res.Confidence, uint8(180))
	assert.Equal(t, 40, res.Features.BBox.Width())
	assert.Equal(t, 40, res.Features.BBox.Height())
}

func TestRecognitionIdempotent(t *testing.T) {
	e := newShapeEngine(t)
	bm := canvas.NewBitmap(e.Width(), e.Height())
	blitRect(bm, 20, 40, 60, 20)
	require.NoError(t, e.LoadBitmap(bm))

	first, err := e.RunRecognition()
	require.NoError(t, err)
	second, err := e.RunRecognition()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, classify.Rectangle, first.Shape)
}

func TestDigitRecognitionEndToEnd(t *testing.T) {
	e := New(Config{Mode: ModeDigit})
	bm := canvas.NewBitmap(e.Width(), e.Height())
	// Paint template 5 at 4x scale; the normalizer must read it back.
	for gy := 0; gy < digit.GridSize; gy++ {
		for gx := 0; gx < digit.GridSize; gx++ {
			if !digit.Templates[5].Get(gx, gy) {
				continue
			}
			blitRect(bm, 20+gx*4, 10+gy*4, 4, 4)
		}
	}
	require.NoError(t, e.LoadBitmap(bm))

	res, err := e.RunRecognition()
	require.NoError(t, err)
	assert.Equal(t, 5, res.Digit)
	assert.Equal(t, "5", res.Label())
	assert.Equal(t, uint8(255), res.Confidence)
}

func TestDigitModeEmptyIsUnknown(t *testing.T) {
	e := New(Config{Mode: ModeDigit})
	res, err := e.RunRecognition()
	require.NoError(t, err)
	assert.Equal(t, digit.Unknown, res.Digit)
	assert.Equal(t, "unknown", res.Label())
	assert.Equal(t, uint8(0), res.Confidence)
}

func TestDrawOutOfBoundsRejected(t *testing.T) {
	e := newShapeEngine(t)
	err := e.Draw(e.Width(), 0, true)
	require.ErrorIs(t, err, canvas.ErrOutOfBounds)
	err = e.Draw(0, -1, true)
	require.ErrorIs(t, err, canvas.ErrOutOfBounds)

	// Round trip: the store must be untouched.
	e.Tick()
	snap := e.Snapshot()
	for addr := 0; addr < snap.Size(); addr++ {
		require.False(t, snap.Get(addr), "address %d mutated", addr)
	}
}

func TestClearAbortsScanAndHidesPartialResults(t *testing.T) {
	e := newShapeEngine(t)
	bm := canvas.NewBitmap(e.Width(), e.Height())
	blitRect(bm, 30, 30, 40, 40)
	require.NoError(t, e.LoadBitmap(bm))

	// Begin a recognition cycle and let the scan get partway in.
	e.StartRecognition(true)
	for i := 0; i < 500; i++ {
		e.Tick()
		require.False(t, e.Done(), "done pulse before clear")
	}

	// Clear interrupts: the scan is abandoned, no result surfaces while
	// the sequencer runs.
	e.Clear()
	for e.Busy() {
		e.Tick()
		require.False(t, e.Done(), "aborted scan surfaced a result")
	}
	e.StartRecognition(false)

	// The next full cycle sees the wiped canvas.
	res, err := e.RunRecognition()
	require.NoError(t, err)
	assert.True(t, res.Features.Empty)
}

func TestBusyWhileClearing(t *testing.T) {
	e := newShapeEngine(t)
	e.Clear()
	e.Tick()
	assert.True(t, e.Busy())
}

func TestRecognitionLevelMustDropBetweenCycles(t *testing.T) {
	e := newShapeEngine(t)
	bm := canvas.NewBitmap(e.Width(), e.Height())
	blitRect(bm, 30, 30, 40, 40)
	require.NoError(t, e.LoadBitmap(bm))

	e.StartRecognition(true)
	budget := e.tickBudget()
	done := false
	for i := 0; i < budget && !done; i++ {
		e.Tick()
		done = e.Done()
	}
	require.True(t, done)

	// Level still held: no second cycle may start.
	for i := 0; i < 100; i++ {
		e.Tick()
		require.False(t, e.Done())
	}
	require.False(t, e.Busy())

	// Falling edge re-arms.
	e.StartRecognition(false)
	res, err := e.RunRecognition()
	require.NoError(t, err)
	assert.Equal(t, classify.Square, res.Shape)
}

func TestServiceDrawBatch(t *testing.T) {
	s := NewService(Config{Mode: ModeShape})
	events := []DrawEvent{
		{X: 10, Y: 10, Ink: true},
		{X: 11, Y: 10, Ink: true},
		{X: -5, Y: 10, Ink: true},  // rejected
		{X: 500, Y: 10, Ink: true}, // rejected
	}
	accepted, rejected := s.Draw(events)
	assert.Equal(t, 2, accepted)
	assert.Equal(t, 2, rejected)

	snap := s.Snapshot()
	assert.True(t, snap.Pixel(10, 10))
	assert.True(t, snap.Pixel(11, 10))
}
