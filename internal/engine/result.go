package engine

import (
	"fmt"

	"github.com/cwbudde/inkshape/internal/classify"
	"github.com/cwbudde/inkshape/internal/digit"
	"github.com/cwbudde/inkshape/internal/scan"
)

// Mode selects what the recognizer looks for.
type Mode uint8

const (
	ModeShape Mode = iota
	ModeDigit
)

func (m Mode) String() string {
	if m == ModeDigit {
		return "digit"
	}
	return "shape"
}

// ParseMode converts a CLI/API mode string.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "shape", "":
		return ModeShape, nil
	case "digit":
		return ModeDigit, nil
	}
	return ModeShape, fmt.Errorf("engine: unknown mode %q", s)
}

// Result is the outcome of one recognition cycle. It is overwritten by the
// next cycle.
type Result struct {
	Mode       Mode           `json:"-"`
	Shape      classify.Label `json:"-"` // shape mode
	Digit      int            `json:"-"` // digit mode, digit.Unknown if none
	Confidence uint8          `json:"confidence"`
	Features   scan.Features  `json:"features"`
}

// Label renders the detected label for display layers; the CLI and the HTTP
// API both print this string.
func (r Result) Label() string {
	if r.Mode == ModeDigit {
		if r.Digit == digit.Unknown {
			return "unknown"
		}
		return fmt.Sprintf("%d", r.Digit)
	}
	return r.Shape.String()
}
