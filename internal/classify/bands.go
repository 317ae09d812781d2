package classify

// AspectGate restricts a rule to boxes of a given aspect class.
type AspectGate uint8

const (
	AspectAny AspectGate = iota
	AspectSquare
	AspectOblong
)

// Band maps a metric interval [Lo, Hi) to a confidence. Hi <= 0 means
// unbounded above. Bands are checked in order; the first hit wins.
type Band struct {
	Lo         int   `json:"lo"`
	Hi         int   `json:"hi"`
	Confidence uint8 `json:"confidence"`
}

// Contains reports whether v falls inside the band.
func (b Band) Contains(v int) bool {
	if v < b.Lo {
		return false
	}
	return b.Hi <= 0 || v < b.Hi
}

// Rule gates one shape label behind a metric band set and an aspect test.
type Rule struct {
	Shape  Label      `json:"shape"`
	Aspect AspectGate `json:"aspect"`
	Bands  []Band     `json:"bands"`
}

// Bands is a complete, tunable threshold set for one classifier strategy.
// The rule order encodes the shape priority (Circle > Square > Rectangle >
// Triangle in the defaults); the documented intervals deliberately overlap
// and the priority order is the only disambiguator.
type Bands struct {
	// MinPixels is the noise floor: below it everything is None/0.
	MinPixels int `json:"minPixels"`
	// AspectNum/AspectDen define the square-aspect tolerance
	// |w-h| < (num/den)*min(w,h).
	AspectNum int `json:"aspectNum"`
	AspectDen int `json:"aspectDen"`

	Rules []Rule `json:"rules"`
}

// DefaultOutlineBands returns the reference thresholds for the outline
// (compactness) strategy, calibrated for single-pixel strokes with the
// bounding-box area in the numerator: a thin ring lands near 3217/pi^2 ~
// 326, a square outline near 3217/16 ~ 201, an oblong rectangle outline in
// the 130-190 range. A triangle outline of the same density scores in the
// ring's range, so triangles are separated from circles by the aspect gate
// and the triangle rule carries the high-compactness oblong bands.
func DefaultOutlineBands() Bands {
	return Bands{
		MinPixels: 20,
		AspectNum: 3,
		AspectDen: 10,
		Rules: []Rule{
			{Shape: Circle, Aspect: AspectSquare, Bands: []Band{
				{Lo: 330, Hi: 420, Confidence: 210},
				{Lo: 300, Hi: 460, Confidence: 190},
				{Lo: 260, Hi: 0, Confidence: 170},
			}},
			{Shape: Square, Aspect: AspectSquare, Bands: []Band{
				{Lo: 200, Hi: 230, Confidence: 200},
				{Lo: 190, Hi: 240, Confidence: 180},
				{Lo: 175, Hi: 255, Confidence: 160},
			}},
			{Shape: Rectangle, Aspect: AspectOblong, Bands: []Band{
				{Lo: 125, Hi: 200, Confidence: 190},
				{Lo: 105, Hi: 215, Confidence: 170},
				{Lo: 90, Hi: 230, Confidence: 150},
			}},
			{Shape: Triangle, Aspect: AspectAny, Bands: []Band{
				{Lo: 300, Hi: 420, Confidence: 180},
				{Lo: 270, Hi: 440, Confidence: 160},
				{Lo: 240, Hi: 460, Confidence: 140},
			}},
		},
	}
}

// DefaultFilledBands returns the reference thresholds for the filled
// (fill-ratio) strategy. A solid disc fills ~201/256 of its box, a solid
// square ~256, a solid triangle ~128.
func DefaultFilledBands() Bands {
	return Bands{
		MinPixels: 20,
		AspectNum: 3,
		AspectDen: 10,
		Rules: []Rule{
			{Shape: Circle, Aspect: AspectSquare, Bands: []Band{
				{Lo: 186, Hi: 216, Confidence: 210},
				{Lo: 171, Hi: 231, Confidence: 190},
				{Lo: 160, Hi: 235, Confidence: 170},
			}},
			{Shape: Square, Aspect: AspectSquare, Bands: []Band{
				{Lo: 245, Hi: 0, Confidence: 220},
				{Lo: 231, Hi: 0, Confidence: 190},
				{Lo: 216, Hi: 0, Confidence: 170},
			}},
			{Shape: Rectangle, Aspect: AspectOblong, Bands: []Band{
				{Lo: 231, Hi: 0, Confidence: 200},
				{Lo: 200, Hi: 0, Confidence: 180},
				{Lo: 180, Hi: 0, Confidence: 160},
			}},
			{Shape: Triangle, Aspect: AspectAny, Bands: []Band{
				{Lo: 113, Hi: 143, Confidence: 180},
				{Lo: 100, Hi: 160, Confidence: 160},
				{Lo: 90, Hi: 170, Confidence: 140},
			}},
		},
	}
}
