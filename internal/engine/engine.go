// Package engine is the main controller: a synchronous, single-threaded
// scheduler that steps every state machine once per tick. Nothing runs in
// parallel; data written to the canvas store becomes visible to readers on
// a later tick, and the single port is shared through fixed-priority
// arbitration. Engine itself is not goroutine-safe; wrap it in a Service
// for concurrent callers.
package engine

import (
	"fmt"

	"github.com/cwbudde/inkshape/internal/canvas"
	"github.com/cwbudde/inkshape/internal/classify"
	"github.com/cwbudde/inkshape/internal/digit"
	"github.com/cwbudde/inkshape/internal/scan"
	"github.com/cwbudde/inkshape/internal/stroke"
)

// Phase is the controller's top-level state.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseScanning
	PhaseClassifying
	PhaseSampling
)

// Config assembles an engine. Zero-value fields fall back to references:
// the 160x120 canvas, shape mode, the filled-strategy classifier.
type Config struct {
	Width, Height int
	Mode          Mode
	Classifier    *classify.GeomClassifier
	MinInk        int
}

// Engine owns one canvas and one recognition context.
type Engine struct {
	mode Mode

	bitmap     *canvas.Bitmap
	port       *canvas.Port
	clear      *canvas.ClearSequencer
	scanner    *scan.Scanner
	pipeline   *classify.Pipeline
	normalizer *digit.Normalizer
	tracker    *stroke.Tracker

	phase Phase

	// recognition request is level-held; armed re-enables a new cycle
	// after the level drops.
	reqLevel bool
	armed    bool

	pendingDraw *canvas.Request

	donePulse bool
	result    Result
}

// New builds an engine from the config.
func New(cfg Config) *Engine {
	if cfg.Width <= 0 {
		cfg.Width = canvas.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = canvas.Height
	}
	if cfg.Classifier == nil {
		cfg.Classifier = classify.NewFilledClassifier()
	}

	bm := canvas.NewBitmap(cfg.Width, cfg.Height)
	sc := scan.NewScanner(cfg.Width, cfg.Height)
	if cfg.MinInk > 0 {
		sc.SetMinInk(cfg.MinInk)
	}

	return &Engine{
		mode:       cfg.Mode,
		bitmap:     bm,
		port:       canvas.NewPort(bm),
		clear:      canvas.NewClearSequencer(bm.Size()),
		scanner:    sc,
		pipeline:   classify.NewPipeline(cfg.Classifier),
		normalizer: digit.NewNormalizer(cfg.Width),
		tracker:    stroke.NewTracker(),
		armed:      true,
	}
}

// Mode returns the recognition mode.
func (e *Engine) Mode() Mode { return e.mode }

// SetMode switches between shape and digit recognition. Takes effect on the
// next cycle.
func (e *Engine) SetMode(m Mode) { e.mode = m }

// Width returns the canvas width.
func (e *Engine) Width() int { return e.bitmap.Width() }

// Height returns the canvas height.
func (e *Engine) Height() int { return e.bitmap.Height() }

// Snapshot returns a copy of the current canvas contents.
func (e *Engine) Snapshot() *canvas.Bitmap { return e.bitmap.Clone() }

// Tracker exposes the incremental stroke classifier.
func (e *Engine) Tracker() *stroke.Tracker { return e.tracker }

// Busy reports whether the engine is clearing or analyzing.
func (e *Engine) Busy() bool { return e.clear.Busy() || e.phase != PhaseIdle }

// Done is the one-tick recognition_done pulse.
func (e *Engine) Done() bool { return e.donePulse }

// Result returns the latest recognition outcome. Valid from the Done pulse
// until the next cycle completes.
func (e *Engine) Result() Result { return e.result }

// Draw queues one pixel event for the next tick. Out-of-bounds coordinates
// are rejected and never reach the store. Drawing is best-effort: if the
// write loses arbitration it is dropped.
func (e *Engine) Draw(x, y int, ink bool) error {
	if !e.bitmap.InBounds(x, y) {
		return fmt.Errorf("engine: draw at (%d,%d): %w", x, y, canvas.ErrOutOfBounds)
	}
	e.pendingDraw = &canvas.Request{Op: canvas.OpWrite, Addr: e.bitmap.Addr(x, y), Bit: ink}
	if ink {
		e.tracker.Observe(x, y)
	}
	return nil
}

// Clear requests a canvas wipe. Any analysis in flight is abandoned and its
// partial results are discarded.
func (e *Engine) Clear() {
	e.clear.Start()
	e.abortAnalysis()
	e.tracker.Reset()
}

// StartRecognition sets the level-held recognition request. The falling
// edge ends the recognition session and re-arms the controller.
func (e *Engine) StartRecognition(level bool) {
	if !level && e.reqLevel {
		e.armed = true
	}
	e.reqLevel = level
}

func (e *Engine) abortAnalysis() {
	if e.phase == PhaseIdle {
		return
	}
	e.scanner.Abort()
	e.normalizer.Abort()
	e.pipeline.Abort()
	e.port.DropReads(canvas.SourceScan)
	e.phase = PhaseIdle
}

// Tick advances every state machine by one tick.
func (e *Engine) Tick() {
	e.donePulse = false

	// Phase 1: submit this tick's port candidates.
	e.clear.Submit(e.port)
	if e.pendingDraw != nil {
		_ = e.port.Submit(canvas.SourceDraw, *e.pendingDraw)
		e.pendingDraw = nil // best-effort: not retried on loss
	}
	e.scanner.Submit(e.port)
	e.normalizer.Submit(e.port)

	// Phase 2: arbitrate and step the store.
	admitted, ok := e.port.Step()

	// Phase 3: advance the machines.
	e.clear.Observe(admitted, ok)
	e.scanner.Advance(admitted, ok, e.port)
	e.normalizer.Advance(admitted, ok, e.port)
	e.pipeline.Tick()

	// Phase 4: controller transitions.
	switch e.phase {
	case PhaseIdle:
		// A clear in progress blocks recognition from starting.
		if e.reqLevel && e.armed && !e.clear.Busy() {
			e.armed = false
			e.scanner.Start()
			e.phase = PhaseScanning
		}

	case PhaseScanning:
		if !e.scanner.Done() {
			return
		}
		f := e.scanner.Features()
		if e.mode == ModeDigit {
			if f.Empty {
				e.finish(Result{Mode: ModeDigit, Digit: digit.Unknown, Features: f})
				return
			}
			e.normalizer.Start(f.BBox)
			e.phase = PhaseSampling
			return
		}
		// The classifier pipeline is always idle here, so the one-tick
		// done pulse cannot be missed.
		e.pipeline.Start(f)
		e.phase = PhaseClassifying

	case PhaseClassifying:
		if !e.pipeline.Done() {
			return
		}
		r := e.pipeline.Result()
		e.finish(Result{
			Mode:       ModeShape,
			Shape:      r.Label,
			Confidence: r.Confidence,
			Features:   e.scanner.Features(),
		})

	case PhaseSampling:
		if !e.normalizer.Done() {
			return
		}
		d, score := digit.Match(e.normalizer.Grid())
		e.finish(Result{
			Mode:       ModeDigit,
			Digit:      d,
			Confidence: digit.Confidence(score),
			Features:   e.scanner.Features(),
		})
	}
}

func (e *Engine) finish(r Result) {
	e.result = r
	e.donePulse = true
	e.phase = PhaseIdle
}
