package classify

import "github.com/cwbudde/inkshape/internal/scan"

// Stage enumerates the pipeline's machine states, one tick each.
type Stage uint8

const (
	StageIdle Stage = iota
	StageLatch
	StageCalcArea
	StageCalcRatios
	StageClassify
)

// Pipeline adapts a Classifier to the engine's tick schedule. Latch copies
// the scanner's output; CalcArea and CalcRatios derive the fixed-point
// metrics; Classify applies the band rules and raises a one-tick done
// pulse. The pipeline is always idle when a scan finishes, so the done
// pulse that starts it cannot be missed.
type Pipeline struct {
	cls *GeomClassifier

	stage Stage
	feat  scan.Features

	// intermediates, for observability in tests and the debug layer
	area   int
	metric int
	square bool

	result    Result
	donePulse bool
}

// NewPipeline stages the given classifier.
func NewPipeline(cls *GeomClassifier) *Pipeline {
	return &Pipeline{cls: cls}
}

// Classifier returns the staged strategy.
func (p *Pipeline) Classifier() *GeomClassifier { return p.cls }

// Start latches a fresh feature set. Ignored unless idle.
func (p *Pipeline) Start(f scan.Features) {
	if p.stage != StageIdle {
		return
	}
	p.feat = f
	p.stage = StageLatch
}

// Busy reports whether a classification is in flight.
func (p *Pipeline) Busy() bool { return p.stage != StageIdle }

// Done is a one-tick pulse raised when a result is ready.
func (p *Pipeline) Done() bool { return p.donePulse }

// Result returns the latest classification. Valid from the done pulse
// until the next Start.
func (p *Pipeline) Result() Result { return p.result }

// Abort cancels an in-flight classification.
func (p *Pipeline) Abort() {
	p.stage = StageIdle
	p.donePulse = false
}

// Tick advances one stage.
func (p *Pipeline) Tick() {
	p.donePulse = false

	switch p.stage {
	case StageIdle:

	case StageLatch:
		if p.feat.Empty || p.feat.PixelCount < p.cls.Bands.MinPixels {
			p.result = Result{Label: None, Confidence: 0}
			p.donePulse = true
			p.stage = StageIdle
			return
		}
		p.stage = StageCalcArea

	case StageCalcArea:
		p.area = p.feat.BBox.Area()
		p.stage = StageCalcRatios

	case StageCalcRatios:
		switch p.cls.Metric {
		case MetricFill:
			p.metric = FillRatio(p.feat.PixelCount, p.area)
		default:
			p.metric = Compactness(p.area, p.feat.Perimeter)
		}
		p.square = SquareAspect(
			p.feat.BBox.Width(), p.feat.BBox.Height(),
			p.cls.Bands.AspectNum, p.cls.Bands.AspectDen,
		)
		p.stage = StageClassify

	case StageClassify:
		p.result = p.cls.Classify(p.feat)
		p.donePulse = true
		p.stage = StageIdle
	}
}
