// Package scan walks the canvas store in raster order and accumulates the
// feature set (pixel count, perimeter estimate, bounding box) that feeds
// the classifiers. The walk goes through the arbitrated port at scan
// priority, so concurrent draw or clear traffic stalls it rather than
// corrupting it.
package scan

import "github.com/cwbudde/inkshape/internal/canvas"

// State enumerates the scanner's machine states.
type State uint8

const (
	StateIdle State = iota
	StateInit
	StateScanAddr
	StateScanWait
	StateScanProc
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInit:
		return "init"
	case StateScanAddr:
		return "scan-addr"
	case StateScanWait:
		return "scan-wait"
	case StateScanProc:
		return "scan-proc"
	case StateDone:
		return "done"
	}
	return "unknown"
}

// Scanner is the feature-extraction state machine. Drive it one tick at a
// time: Submit before the port Step, Advance after.
type Scanner struct {
	width  int
	height int
	minInk int

	state State
	x, y  int
	bit   bool // latched read result awaiting ScanProc
	feat  Features

	donePulse bool
	out       Features
}

// NewScanner creates a scanner for a width x height store using the default
// noise threshold.
func NewScanner(width, height int) *Scanner {
	return &Scanner{width: width, height: height, minInk: DefaultMinInk}
}

// SetMinInk overrides the minimum-ink noise threshold.
func (s *Scanner) SetMinInk(n int) { s.minInk = n }

// Start requests a scan pass. Ignored unless the scanner is idle.
func (s *Scanner) Start() {
	if s.state == StateIdle {
		s.state = StateInit
	}
}

// Abort cancels an in-flight pass and discards partial results. The caller
// must also drop the scanner's in-flight port reads.
func (s *Scanner) Abort() {
	s.state = StateIdle
	s.donePulse = false
}

// Busy reports whether a pass is in progress.
func (s *Scanner) Busy() bool { return s.state != StateIdle }

// Done is a one-tick pulse raised on the tick a pass completes.
func (s *Scanner) Done() bool { return s.donePulse }

// State returns the current machine state.
func (s *Scanner) State() State { return s.state }

// Features returns the completed feature set. Valid from the Done pulse
// until the next Start.
func (s *Scanner) Features() Features { return s.out }

// Submit registers this tick's port read, when the machine is at ScanAddr.
func (s *Scanner) Submit(p *canvas.Port) {
	if s.state != StateScanAddr {
		return
	}
	// A losing request is retried next tick; ErrSlotTaken cannot occur
	// because the scanner is the only SourceScan requester.
	_ = p.Submit(canvas.SourceScan, canvas.Request{
		Op:   canvas.OpRead,
		Addr: s.y*s.width + s.x,
	})
}

// Advance steps the machine after a port Step.
func (s *Scanner) Advance(admitted canvas.Source, ok bool, p *canvas.Port) {
	s.donePulse = false

	switch s.state {
	case StateIdle:

	case StateInit:
		s.x, s.y = 0, 0
		s.feat = Features{BBox: SentinelBBox(s.width, s.height)}
		s.state = StateScanAddr

	case StateScanAddr:
		if ok && admitted == canvas.SourceScan {
			s.state = StateScanWait
		}
		// Lost arbitration: hold the address and retry.

	case StateScanWait:
		if bit, ready := p.Result(canvas.SourceScan); ready {
			s.bit = bit
			s.state = StateScanProc
		}

	case StateScanProc:
		if s.bit {
			s.feat.PixelCount++
			s.feat.Perimeter++
			s.feat.BBox.Update(s.x, s.y)
		}
		s.x++
		if s.x >= s.width {
			s.x = 0
			s.y++
		}
		if s.y >= s.height {
			s.state = StateDone
		} else {
			s.state = StateScanAddr
		}

	case StateDone:
		s.feat.Empty = s.feat.PixelCount < s.minInk
		s.out = s.feat
		s.donePulse = true
		s.state = StateIdle
	}
}
