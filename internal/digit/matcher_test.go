package digit

import (
	"testing"

	"github.com/cwbudde/inkshape/internal/canvas"
	"github.com/cwbudde/inkshape/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesSelfMatch(t *testing.T) {
	for d, tpl := range Templates {
		got, score := Match(tpl)
		require.Equal(t, d, got, "template %d matched as %d", d, got)
		require.Equal(t, MaxScore, score, "template %d self-score", d)
	}
}

func TestTemplatesAreDistinct(t *testing.T) {
	for a := 0; a < 10; a++ {
		for b := a + 1; b < 10; b++ {
			assert.Less(t, Similarity(Templates[a], Templates[b]), MaxScore,
				"templates %d and %d identical", a, b)
		}
	}
}

func TestTieBreakLowestIndex(t *testing.T) {
	// Two identical candidates: the strict greater-than comparison keeps
	// the first one.
	tpl := Templates[7]
	idx, score := bestOf(tpl, []Grid{tpl, tpl})
	assert.Equal(t, 0, idx)
	assert.Equal(t, MaxScore, score)
}

func TestConfidenceScaling(t *testing.T) {
	assert.Equal(t, uint8(255), Confidence(MaxScore))
	assert.Equal(t, uint8(0), Confidence(0))
	assert.Equal(t, uint8(127), Confidence(MaxScore/2))
}

// paintGrid blits a 16x16 grid onto the bitmap scaled up into the given box.
func paintGrid(bm *canvas.Bitmap, g Grid, x0, y0, scale int) {
	for gy := 0; gy < GridSize; gy++ {
		for gx := 0; gx < GridSize; gx++ {
			if !g.Get(gx, gy) {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					bm.SetPixel(x0+gx*scale+dx, y0+gy*scale+dy, true)
				}
			}
		}
	}
}

func TestResampleRoundTrip(t *testing.T) {
	// A template painted at 4x scale and resampled through its bounding
	// box must come back close enough to win the match.
	for _, d := range []int{0, 1, 3, 5, 8} {
		bm := canvas.NewBitmap(canvas.Width, canvas.Height)
		paintGrid(bm, Templates[d], 20, 10, 4)

		f := scan.Extract(bm, 1)
		require.Positive(t, f.PixelCount)

		img := Resample(bm, f.BBox)
		got, score := Match(img)
		assert.Equal(t, d, got, "digit %d misread as %d (score %d)", d, got, score)
	}
}

func TestNormalizerMatchesResample(t *testing.T) {
	bm := canvas.NewBitmap(canvas.Width, canvas.Height)
	paintGrid(bm, Templates[2], 40, 20, 3)
	f := scan.Extract(bm, 1)

	p := canvas.NewPort(bm)
	n := NewNormalizer(bm.Width())
	n.Start(f.BBox)

	limit := GridSize * GridSize * (canvas.ReadLatency + 2)
	var got Grid
	done := false
	for i := 0; i < limit && !done; i++ {
		n.Submit(p)
		src, ok := p.Step()
		n.Advance(src, ok, p)
		if n.Done() {
			got = n.Grid()
			done = true
		}
	}
	require.True(t, done, "normalizer did not finish within tick budget")

	assert.Equal(t, Resample(bm, f.BBox), got)
}

func TestNormalizerAllInkBox(t *testing.T) {
	bm := canvas.NewBitmap(canvas.Width, canvas.Height)
	for y := 30; y < 62; y++ {
		for x := 50; x < 82; x++ {
			bm.SetPixel(x, y, true)
		}
	}
	f := scan.Extract(bm, 1)
	img := Resample(bm, f.BBox)
	assert.Equal(t, MaxScore, img.PixelCount(), "solid box must resample solid")
}
