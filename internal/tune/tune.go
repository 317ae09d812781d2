package tune

import (
	"fmt"

	"github.com/cwbudde/inkshape/internal/classify"
	"github.com/cwbudde/inkshape/internal/opt"
)

// Encode flattens every tunable band edge of a band set into a parameter
// vector: Lo for each band, plus Hi for bounded bands. Decode is its
// inverse against the same base layout.
func Encode(b classify.Bands) []float64 {
	var v []float64
	for _, rule := range b.Rules {
		for _, band := range rule.Bands {
			v = append(v, float64(band.Lo))
			if band.Hi > 0 {
				v = append(v, float64(band.Hi))
			}
		}
	}
	return v
}

// Bounds returns the search box: each edge may move by slack in either
// direction, floored at zero.
func Bounds(b classify.Bands, slack float64) (lower, upper []float64) {
	base := Encode(b)
	lower = make([]float64, len(base))
	upper = make([]float64, len(base))
	for i, v := range base {
		lo := v - slack
		if lo < 0 {
			lo = 0
		}
		lower[i] = lo
		upper[i] = v + slack
	}
	return lower, upper
}

// Decode rebuilds a band set from a parameter vector, preserving the base
// layout (rule order, band count, confidences, unbounded uppers). Inverted
// intervals are swapped rather than rejected, so every vector in the search
// box decodes to a usable band set.
func Decode(base classify.Bands, v []float64) classify.Bands {
	out := base
	out.Rules = make([]classify.Rule, len(base.Rules))
	i := 0
	for ri, rule := range base.Rules {
		nr := rule
		nr.Bands = make([]classify.Band, len(rule.Bands))
		for bi, band := range rule.Bands {
			nb := band
			nb.Lo = int(v[i])
			i++
			if band.Hi > 0 {
				nb.Hi = int(v[i])
				i++
				if nb.Hi < nb.Lo {
					nb.Lo, nb.Hi = nb.Hi, nb.Lo
				}
			}
			nr.Bands[bi] = nb
		}
		out.Rules[ri] = nr
	}
	return out
}

// Cost scores a band set against the corpus: one point per misclassified
// sample, plus a small pressure toward confident correct answers so that
// among equally accurate band sets the tighter one wins.
func Cost(bands classify.Bands, metric classify.Metric, corpus []Sample) float64 {
	cls := &classify.GeomClassifier{Metric: metric, Bands: bands}
	wrong := 0
	var conf float64
	for _, s := range corpus {
		r := cls.Classify(s.Features)
		if r.Label != s.Label {
			wrong++
		} else {
			conf += float64(r.Confidence) / 255
		}
	}
	n := float64(len(corpus))
	return float64(wrong) + 0.5*(1-conf/n)
}

// Accuracy returns the fraction of corpus samples a band set classifies
// correctly.
func Accuracy(bands classify.Bands, metric classify.Metric, corpus []Sample) float64 {
	cls := &classify.GeomClassifier{Metric: metric, Bands: bands}
	right := 0
	for _, s := range corpus {
		if cls.Classify(s.Features).Label == s.Label {
			right++
		}
	}
	return float64(right) / float64(len(corpus))
}

// Options configures a tuning run.
type Options struct {
	Metric   classify.Metric
	Iters    int
	PopSize  int
	Seed     int64
	PerShape int
	// Slack is how far each band edge may wander from its reference
	// value, in fixed-point metric units.
	Slack float64
	// OnImprove, if set, is called whenever the running best cost drops.
	OnImprove func(eval int, cost float64)
}

// Outcome is the result of a tuning run.
type Outcome struct {
	Bands       classify.Bands
	Metric      classify.Metric
	InitialCost float64
	BestCost    float64
	Accuracy    float64
	Samples     int
	Evals       int
}

// Run builds a corpus, searches the band edges with the mayfly optimizer,
// and returns the best band set found. The reference bands are always the
// starting layout; tuning never changes rule priority or band counts.
func Run(o Options) (*Outcome, error) {
	var base classify.Bands
	switch o.Metric {
	case classify.MetricFill:
		base = classify.DefaultFilledBands()
	case classify.MetricCompactness:
		base = classify.DefaultOutlineBands()
	default:
		return nil, fmt.Errorf("tune: unknown metric %d", o.Metric)
	}
	if o.Iters <= 0 {
		o.Iters = 100
	}
	if o.PopSize < 20 {
		o.PopSize = 20
	}
	if o.Slack <= 0 {
		o.Slack = 40
	}

	corpus := BuildCorpus(CorpusConfig{
		PerShape: o.PerShape,
		Seed:     o.Seed,
		Filled:   o.Metric == classify.MetricFill,
	})

	lower, upper := Bounds(base, o.Slack)
	dim := len(lower)

	evals := 0
	best := -1.0
	eval := func(v []float64) float64 {
		evals++
		c := Cost(Decode(base, v), o.Metric, corpus)
		if best < 0 || c < best {
			best = c
			if o.OnImprove != nil {
				o.OnImprove(evals, c)
			}
		}
		return c
	}

	initial := Cost(base, o.Metric, corpus)

	optimizer := opt.NewMayfly(o.Iters, o.PopSize, o.Seed)
	bestVec, bestCost := optimizer.Run(eval, lower, upper, dim)

	bands := Decode(base, bestVec)
	// Never regress below the reference thresholds.
	if initial <= bestCost {
		bands = base
		bestCost = initial
	}

	return &Outcome{
		Bands:       bands,
		Metric:      o.Metric,
		InitialCost: initial,
		BestCost:    bestCost,
		Accuracy:    Accuracy(bands, o.Metric, corpus),
		Samples:     len(corpus),
		Evals:       evals,
	}, nil
}
