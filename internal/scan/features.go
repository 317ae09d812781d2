package scan

import "github.com/cwbudde/inkshape/internal/canvas"

// DefaultMinInk is the minimum pixel count for a canvas to be treated as
// holding a stroke. Anything below it is accidental clicks or noise.
const DefaultMinInk = 20

// BBox is the smallest axis-aligned rectangle containing all ink pixels.
// Before any pixel is observed, Min fields hold the opposite extreme so the
// first update snaps both sides onto the pixel.
type BBox struct {
	MinX int `json:"minX"`
	MaxX int `json:"maxX"`
	MinY int `json:"minY"`
	MaxY int `json:"maxY"`
}

// SentinelBBox returns the pre-scan initialization for a w x h surface.
func SentinelBBox(w, h int) BBox {
	return BBox{MinX: w - 1, MaxX: 0, MinY: h - 1, MaxY: 0}
}

// Update grows the box to include (x, y).
func (b *BBox) Update(x, y int) {
	if x < b.MinX {
		b.MinX = x
	}
	if x > b.MaxX {
		b.MaxX = x
	}
	if y < b.MinY {
		b.MinY = y
	}
	if y > b.MaxY {
		b.MaxY = y
	}
}

// Width returns max-min+1. Only meaningful once at least one pixel was seen.
func (b BBox) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns max-min+1. Only meaningful once at least one pixel was seen.
func (b BBox) Height() int { return b.MaxY - b.MinY + 1 }

// Area returns the box area in pixels.
func (b BBox) Area() int { return b.Width() * b.Height() }

// Features is the statistics bundle one scan pass produces. It is created
// fresh per recognition cycle and handed to the classifier by value.
type Features struct {
	PixelCount int  `json:"pixelCount"`
	Perimeter  int  `json:"perimeter"` // outline mode: every ink pixel contributes
	BBox       BBox `json:"bbox"`
	Empty      bool `json:"empty"`
}

// Extract computes the same feature set a full scanner pass produces,
// without the port protocol. It serves as the oracle in tests and as the
// fast path for the threshold tuner, where cycle accuracy does not matter.
func Extract(bm *canvas.Bitmap, minInk int) Features {
	f := Features{BBox: SentinelBBox(bm.Width(), bm.Height())}
	for y := 0; y < bm.Height(); y++ {
		for x := 0; x < bm.Width(); x++ {
			if !bm.Pixel(x, y) {
				continue
			}
			f.PixelCount++
			f.Perimeter++
			f.BBox.Update(x, y)
		}
	}
	f.Empty = f.PixelCount < minInk
	return f
}
