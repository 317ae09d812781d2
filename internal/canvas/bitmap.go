package canvas

// Default canvas dimensions: a 320x240 drawing surface captured at half
// resolution.
const (
	Width  = 160
	Height = 120
)

// Bitmap is a 1 bit-per-pixel surface addressed linearly (addr = y*width+x).
// It is allocated once and never resized.
type Bitmap struct {
	width  int
	height int
	words  []uint64
}

// NewBitmap allocates a zeroed width x height bitmap.
func NewBitmap(width, height int) *Bitmap {
	if width <= 0 || height <= 0 {
		panic("canvas: bitmap dimensions must be positive")
	}
	size := width * height
	return &Bitmap{
		width:  width,
		height: height,
		words:  make([]uint64, (size+63)/64),
	}
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Size returns the number of addressable pixels.
func (b *Bitmap) Size() int { return b.width * b.height }

// InBounds reports whether (x, y) lies on the bitmap.
func (b *Bitmap) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Addr converts a coordinate pair to a linear address. The coordinate must
// be in bounds.
func (b *Bitmap) Addr(x, y int) int { return y*b.width + x }

// Get returns the bit at the given linear address.
func (b *Bitmap) Get(addr int) bool {
	return b.words[addr>>6]&(1<<uint(addr&63)) != 0
}

// Set stores the bit at the given linear address.
func (b *Bitmap) Set(addr int, ink bool) {
	if ink {
		b.words[addr>>6] |= 1 << uint(addr&63)
	} else {
		b.words[addr>>6] &^= 1 << uint(addr&63)
	}
}

// Pixel returns the bit at (x, y).
func (b *Bitmap) Pixel(x, y int) bool { return b.Get(b.Addr(x, y)) }

// SetPixel stores the bit at (x, y).
func (b *Bitmap) SetPixel(x, y int, ink bool) { b.Set(b.Addr(x, y), ink) }

// Clone returns an independent copy of the bitmap.
func (b *Bitmap) Clone() *Bitmap {
	cp := &Bitmap{width: b.width, height: b.height, words: make([]uint64, len(b.words))}
	copy(cp.words, b.words)
	return cp
}

// Reset zeroes every pixel without going through the port. It exists for
// tests and for rebuilding a session; the tick-accurate path is the
// ClearSequencer.
func (b *Bitmap) Reset() {
	for i := range b.words {
		b.words[i] = 0
	}
}
