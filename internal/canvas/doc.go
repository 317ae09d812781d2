// Package canvas implements the shared drawing surface: a fixed-size binary
// bitmap behind a single read/write port with a fixed read latency, an
// arbiter that admits one access per tick with Clear > Draw > Scan priority,
// and a sequencer that zeroes the surface one address per tick.
//
// The port models a single exclusive resource: every consumer submits at
// most one request per tick and only the highest-priority request is
// admitted. Losing requesters hold their request and retry; a losing draw
// write is simply dropped (brush strokes cover several pixels, so a single
// lost write never changes the classification).
package canvas
