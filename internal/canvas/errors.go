package canvas

import "errors"

var (
	// ErrOutOfBounds indicates a request whose address lies outside the
	// bitmap. Such requests are rejected before they reach the store.
	ErrOutOfBounds = errors.New("canvas: address out of bounds")
	// ErrSlotTaken indicates a source submitted two requests in one tick.
	ErrSlotTaken = errors.New("canvas: request slot already occupied this tick")
)
