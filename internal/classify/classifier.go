// Package classify turns a scanned feature set into a shape label and a
// confidence score using x256 fixed-point ratio metrics and tunable
// threshold bands. The outline and filled variants are interchangeable
// strategies behind the Classifier interface; a staged Pipeline adapts a
// strategy to the engine's one-stage-per-tick schedule.
package classify

import "github.com/cwbudde/inkshape/internal/scan"

// Metric selects which ratio a geometric classifier bands against.
type Metric uint8

const (
	// MetricCompactness suits thin hand-drawn outlines, where every ink
	// pixel approximates the perimeter.
	MetricCompactness Metric = iota
	// MetricFill suits filled strokes, where the ink count approximates
	// the shape area.
	MetricFill
)

func (m Metric) String() string {
	if m == MetricFill {
		return "fill"
	}
	return "compactness"
}

// Classifier maps a feature set to a shape result. Implementations never
// fail: bad input degrades to (None, 0).
type Classifier interface {
	Classify(f scan.Features) Result
}

// GeomClassifier is the banded geometric classifier. The zero value is not
// usable; construct with NewOutlineClassifier or NewFilledClassifier, or
// assemble one with tuned Bands.
type GeomClassifier struct {
	Metric Metric
	Bands  Bands
}

// NewOutlineClassifier returns the compactness strategy with reference
// thresholds.
func NewOutlineClassifier() *GeomClassifier {
	return &GeomClassifier{Metric: MetricCompactness, Bands: DefaultOutlineBands()}
}

// NewFilledClassifier returns the fill-ratio strategy with reference
// thresholds.
func NewFilledClassifier() *GeomClassifier {
	return &GeomClassifier{Metric: MetricFill, Bands: DefaultFilledBands()}
}

// Classify applies the rule list in priority order and returns the first
// rule whose aspect gate and metric band both match.
func (c *GeomClassifier) Classify(f scan.Features) Result {
	if f.Empty || f.PixelCount < c.Bands.MinPixels {
		return Result{Label: None, Confidence: 0}
	}

	w, h := f.BBox.Width(), f.BBox.Height()
	area := f.BBox.Area()

	var metric int
	switch c.Metric {
	case MetricFill:
		metric = FillRatio(f.PixelCount, area)
	default:
		metric = Compactness(area, f.Perimeter)
	}
	if metric == 0 {
		// Degenerate geometry (zero area or perimeter).
		return Result{Label: None, Confidence: 0}
	}

	square := SquareAspect(w, h, c.Bands.AspectNum, c.Bands.AspectDen)
	for _, rule := range c.Bands.Rules {
		switch rule.Aspect {
		case AspectSquare:
			if !square {
				continue
			}
		case AspectOblong:
			if square {
				continue
			}
		}
		for _, band := range rule.Bands {
			if band.Contains(metric) {
				return Result{Label: rule.Shape, Confidence: band.Confidence}
			}
		}
	}
	return Result{Label: None, Confidence: 0}
}
