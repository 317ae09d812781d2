package engine

import (
	"sync"

	"github.com/cwbudde/inkshape/internal/canvas"
)

// DrawEvent is one pointer sample in canvas coordinates.
type DrawEvent struct {
	X   int  `json:"x"`
	Y   int  `json:"y"`
	Ink bool `json:"ink"`
}

// Service wraps an Engine for concurrent callers. The engine itself is
// strictly single-threaded; the service serializes access with a mutex, so
// each API call observes a consistent tick boundary.
type Service struct {
	mu  sync.Mutex
	eng *Engine
}

// NewService builds an engine and its lock.
func NewService(cfg Config) *Service {
	return &Service{eng: New(cfg)}
}

// Mode returns the engine's recognition mode.
func (s *Service) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Mode()
}

// SetMode switches the recognition mode.
func (s *Service) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eng.SetMode(m)
}

// Draw replays a batch of pointer events, one tick each, and returns how
// many were accepted. Out-of-bounds events are counted as rejected and do
// not interrupt the batch.
func (s *Service) Draw(events []DrawEvent) (accepted, rejected int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range events {
		if err := s.eng.Draw(ev.X, ev.Y, ev.Ink); err != nil {
			rejected++
		} else {
			accepted++
		}
		s.eng.Tick()
	}
	return accepted, rejected
}

// Clear wipes the canvas, blocking until the sequencer finishes.
func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.RunClear()
}

// Recognize runs one full recognition cycle.
func (s *Service) Recognize() (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.RunRecognition()
}

// Incremental returns the stroke tracker's current verdict without a scan
// pass.
func (s *Service) Incremental() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.eng.Tracker().Classify()
	return Result{Mode: ModeShape, Shape: r.Label, Confidence: r.Confidence}
}

// Snapshot copies the current canvas.
func (s *Service) Snapshot() *canvas.Bitmap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.Snapshot()
}
