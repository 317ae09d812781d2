package classify

import (
	"testing"

	"github.com/cwbudde/inkshape/internal/canvas"
	"github.com/cwbudde/inkshape/internal/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// features builds a synthetic feature set with the given ink statistics and
// box dimensions.
func features(pixels, perimeter, w, h int) scan.Features {
	return scan.Features{
		PixelCount: pixels,
		Perimeter:  perimeter,
		BBox:       scan.BBox{MinX: 10, MaxX: 10 + w - 1, MinY: 10, MaxY: 10 + h - 1},
	}
}

func fillDisc(bm *canvas.Bitmap, cx, cy, r int) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				bm.SetPixel(cx+x, cy+y, true)
			}
		}
	}
}

func fillRect(bm *canvas.Bitmap, x0, y0, w, h int) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			bm.SetPixel(x, y, true)
		}
	}
}

// fillTriangle rasterizes a solid isoceles triangle, apex up.
func fillTriangle(bm *canvas.Bitmap, x0, y0, w, h int) {
	for row := 0; row < h; row++ {
		rowW := (w*row)/h + 1
		start := x0 + (w-rowW)/2
		for x := start; x < start+rowW; x++ {
			bm.SetPixel(x, y0+row, true)
		}
	}
}

func TestEmptyAndNoiseYieldNone(t *testing.T) {
	for _, cls := range []*GeomClassifier{NewOutlineClassifier(), NewFilledClassifier()} {
		got := cls.Classify(scan.Features{Empty: true})
		assert.Equal(t, Result{Label: None, Confidence: 0}, got)

		// Below the noise floor but not flagged empty.
		got = cls.Classify(features(5, 5, 3, 3))
		assert.Equal(t, Result{Label: None, Confidence: 0}, got)
	}
}

func TestDegenerateGeometryGuard(t *testing.T) {
	cls := NewOutlineClassifier()
	// Perimeter of zero must not divide by zero.
	f := features(30, 0, 10, 10)
	assert.Equal(t, Result{Label: None, Confidence: 0}, cls.Classify(f))
}

func TestFilledSquareScenario(t *testing.T) {
	bm := canvas.NewBitmap(canvas.Width, canvas.Height)
	fillRect(bm, 30, 30, 40, 40)
	f := scan.Extract(bm, scan.DefaultMinInk)

	got := NewFilledClassifier().Classify(f)
	require.Equal(t, Square, got.Label)
	assert.GreaterOrEqual(t, got.Confidence, uint8(180))
}

func TestFilledRectangleScenario(t *testing.T) {
	bm := canvas.NewBitmap(canvas.Width, canvas.Height)
	fillRect(bm, 20, 40, 60, 20)
	f := scan.Extract(bm, scan.DefaultMinInk)

	got := NewFilledClassifier().Classify(f)
	assert.Equal(t, Rectangle, got.Label)
}

func TestFilledDiscIsCircle(t *testing.T) {
	bm := canvas.NewBitmap(canvas.Width, canvas.Height)
	fillDisc(bm, 60, 60, 20)
	f := scan.Extract(bm, scan.DefaultMinInk)

	got := NewFilledClassifier().Classify(f)
	require.Equal(t, Circle, got.Label)
	assert.GreaterOrEqual(t, got.Confidence, uint8(190))
}

func TestFilledTriangle(t *testing.T) {
	bm := canvas.NewBitmap(canvas.Width, canvas.Height)
	fillTriangle(bm, 30, 30, 48, 40)
	f := scan.Extract(bm, scan.DefaultMinInk)

	got := NewFilledClassifier().Classify(f)
	assert.Equal(t, Triangle, got.Label)
}

func TestOutlineBands(t *testing.T) {
	cls := NewOutlineClassifier()
	cases := []struct {
		name    string
		f       scan.Features
		want    Label
		minConf uint8
	}{
		// compactness = 3217*1600/120^2 = 357 -> tight circle band
		{"CircleTight", features(120, 120, 40, 40), Circle, 210},
		// compactness = 3217*1600/155^2 = 214 -> square band
		{"Square", features(155, 155, 40, 40), Square, 200},
		// 60x20 box, compactness = 3217*1200/150^2 = 171, oblong
		{"Rectangle", features(150, 150, 60, 20), Rectangle, 190},
		// 60x24 box is oblong, so the circle rule is skipped and
		// compactness = 3217*1440/120^2 = 321 reaches the triangle rule
		{"Triangle", features(120, 120, 60, 24), Triangle, 180},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cls.Classify(tc.f)
			require.Equal(t, tc.want, got.Label)
			assert.GreaterOrEqual(t, got.Confidence, tc.minConf)
		})
	}
}

func TestPriorityCircleBeforeTriangle(t *testing.T) {
	// compactness = 3217*1600/135^2 = 282 with square aspect satisfies
	// both a circle band and a triangle band; the rule order must pick
	// circle.
	cls := NewOutlineClassifier()
	got := cls.Classify(features(135, 135, 40, 40))
	assert.Equal(t, Circle, got.Label)
}

func TestPipelineStages(t *testing.T) {
	p := NewPipeline(NewFilledClassifier())

	bm := canvas.NewBitmap(canvas.Width, canvas.Height)
	fillRect(bm, 30, 30, 40, 40)
	f := scan.Extract(bm, scan.DefaultMinInk)

	p.Start(f)
	require.True(t, p.Busy())

	// Latch, CalcArea, CalcRatios, Classify: four ticks.
	for i := 0; i < 3; i++ {
		p.Tick()
		require.False(t, p.Done(), "done raised early at tick %d", i)
	}
	p.Tick()
	require.True(t, p.Done())
	assert.False(t, p.Busy())
	assert.Equal(t, Square, p.Result().Label)

	// The pulse lasts one tick.
	p.Tick()
	assert.False(t, p.Done())
}

func TestPipelineEmptyShortCircuit(t *testing.T) {
	p := NewPipeline(NewOutlineClassifier())
	p.Start(scan.Features{Empty: true})

	p.Tick()
	require.True(t, p.Done())
	assert.Equal(t, Result{Label: None, Confidence: 0}, p.Result())
}
