package tune

import (
	"testing"

	"github.com/cwbudde/inkshape/internal/classify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, base := range []classify.Bands{classify.DefaultFilledBands(), classify.DefaultOutlineBands()} {
		v := Encode(base)
		require.NotEmpty(t, v)
		got := Decode(base, v)
		assert.Equal(t, base, got)
	}
}

func TestDecodeSwapsInvertedInterval(t *testing.T) {
	base := classify.DefaultFilledBands()
	v := Encode(base)
	// Invert the first bounded band.
	v[0], v[1] = v[1], v[0]
	got := Decode(base, v)
	first := got.Rules[0].Bands[0]
	assert.LessOrEqual(t, first.Lo, first.Hi)
}

func TestCorpusIsLabeledAndNonEmpty(t *testing.T) {
	for _, filled := range []bool{true, false} {
		corpus := BuildCorpus(CorpusConfig{PerShape: 10, Seed: 1, Filled: filled})
		require.Len(t, corpus, 40)
		for _, s := range corpus {
			assert.False(t, s.Features.Empty, "sample of %v below noise floor", s.Label)
			assert.Positive(t, s.Features.BBox.Width())
		}
	}
}

func TestReferenceBandsClassifyFilledCorpusWell(t *testing.T) {
	corpus := BuildCorpus(CorpusConfig{PerShape: 30, Seed: 42, Filled: true})
	acc := Accuracy(classify.DefaultFilledBands(), classify.MetricFill, corpus)
	assert.GreaterOrEqual(t, acc, 0.9, "reference filled bands accuracy")
}

func TestReferenceBandsClassifyOutlineCorpusWell(t *testing.T) {
	corpus := BuildCorpus(CorpusConfig{PerShape: 30, Seed: 42, Filled: false})
	acc := Accuracy(classify.DefaultOutlineBands(), classify.MetricCompactness, corpus)
	assert.GreaterOrEqual(t, acc, 0.9, "reference outline bands accuracy")
}

func TestRunNeverRegresses(t *testing.T) {
	var improvements int
	out, err := Run(Options{
		Metric:    classify.MetricFill,
		Iters:     20,
		PopSize:   20,
		Seed:      7,
		PerShape:  10,
		OnImprove: func(int, float64) { improvements++ },
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, out.BestCost, out.InitialCost)
	assert.Positive(t, out.Evals)
	assert.Positive(t, improvements)
	assert.Equal(t, 40, out.Samples)

	// The tuned bands must preserve the rule layout.
	base := classify.DefaultFilledBands()
	require.Len(t, out.Bands.Rules, len(base.Rules))
	for i, rule := range out.Bands.Rules {
		assert.Equal(t, base.Rules[i].Shape, rule.Shape)
		assert.Len(t, rule.Bands, len(base.Rules[i].Bands))
	}
}
