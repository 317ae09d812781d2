package classify

// Label is the shape taxonomy the geometric classifier emits.
type Label uint8

const (
	None Label = iota
	Rectangle
	Square
	Triangle
	Circle
)

var labelNames = [...]string{"none", "rectangle", "square", "triangle", "circle"}

func (l Label) String() string {
	if int(l) < len(labelNames) {
		return labelNames[l]
	}
	return "unknown"
}

// Result pairs a shape label with a confidence score in [0,255]. A label of
// None always carries confidence 0; ambiguous or empty input is a normal
// low-confidence result, never an error.
type Result struct {
	Label      Label `json:"label"`
	Confidence uint8 `json:"confidence"`
}
