package engine

import (
	"errors"

	"github.com/cwbudde/inkshape/internal/canvas"
)

// ErrTickBudget indicates a run helper exceeded its worst-case tick bound,
// which can only mean a wedged state machine.
var ErrTickBudget = errors.New("engine: tick budget exhausted")

// tickBudget is the worst-case tick count for one full recognition cycle:
// a raster scan at read latency plus the 256-cell resample plus pipeline
// and controller overhead.
func (e *Engine) tickBudget() int {
	perRead := canvas.ReadLatency + 2
	return e.bitmap.Size()*perRead + 256*perRead + 64
}

// RunRecognition asserts the recognition request, ticks the engine until
// the done pulse, and drops the request again. It is the blocking
// convenience wrapper around the cycle-accurate Tick interface.
func (e *Engine) RunRecognition() (Result, error) {
	e.StartRecognition(true)
	defer e.StartRecognition(false)

	for i := 0; i < e.tickBudget(); i++ {
		e.Tick()
		if e.Done() {
			return e.Result(), nil
		}
	}
	return Result{}, ErrTickBudget
}

// RunClear requests a canvas wipe and ticks until it completes.
func (e *Engine) RunClear() error {
	e.Clear()
	for i := 0; i < e.bitmap.Size()+8; i++ {
		e.Tick()
		if !e.Busy() {
			return nil
		}
	}
	return ErrTickBudget
}

// DrawStroke replays a point sequence as one draw event per tick. Points
// outside the canvas are rejected individually; the stroke continues.
func (e *Engine) DrawStroke(points [][2]int) (accepted int) {
	for _, pt := range points {
		if err := e.Draw(pt[0], pt[1], true); err == nil {
			accepted++
		}
		e.Tick()
	}
	return accepted
}

// LoadBitmap blits prepared ink directly into the store, bypassing the
// port. This is the behavioral-equivalent fast path for batch input (CLI
// images); interactive drawing must go through Draw.
func (e *Engine) LoadBitmap(src *canvas.Bitmap) error {
	if src.Width() != e.bitmap.Width() || src.Height() != e.bitmap.Height() {
		return errors.New("engine: bitmap dimensions do not match canvas")
	}
	for y := 0; y < src.Height(); y++ {
		for x := 0; x < src.Width(); x++ {
			ink := src.Pixel(x, y)
			e.bitmap.SetPixel(x, y, ink)
			if ink {
				e.tracker.Observe(x, y)
			}
		}
	}
	return nil
}
