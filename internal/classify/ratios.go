package classify

// All shape metrics use x256 fixed-point integer arithmetic. The threshold
// bands are calibrated against this scale; do not convert to floating point.
const (
	// FixedScale is the fixed-point scale factor.
	FixedScale = 256
	// compactnessNum approximates 4*pi scaled by 256.
	compactnessNum = 3217
)

// Compactness returns ~4*pi*area/perimeter^2 scaled by 256, with the
// bounding-box area standing in for the true ink area (the outline scan
// cannot observe the latter): a thin single-pixel ring lands near 3217/pi^2
// ~ 326, not the textbook 256. Rounder shapes score higher. A zero or
// negative perimeter yields 0 rather than dividing by zero.
func Compactness(area, perimeter int) int {
	if perimeter <= 0 || area <= 0 {
		return 0
	}
	return compactnessNum * area / (perimeter * perimeter)
}

// FillRatio returns pixelCount/area scaled by 256: how much of the bounding
// box the ink occupies. A solid disc lands near 201 (pi/4), a solid square
// near 256. A degenerate box yields 0.
func FillRatio(pixelCount, area int) int {
	if area <= 0 || pixelCount <= 0 {
		return 0
	}
	return (pixelCount << 8) / area
}

// AspectDiff returns |w-h|.
func AspectDiff(w, h int) int {
	if w > h {
		return w - h
	}
	return h - w
}

// SquareAspect reports whether a w x h box is square within the num/den
// tolerance: |w-h| < (num/den)*min(w,h). The reference tolerance is 3/10,
// i.e. 30 percent slack for hand-drawn imperfection.
func SquareAspect(w, h, num, den int) bool {
	m := w
	if h < m {
		m = h
	}
	return AspectDiff(w, h)*den < num*m
}
