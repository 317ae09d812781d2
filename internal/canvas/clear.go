package canvas

// ClearSequencer zeroes the canvas by issuing one write per tick in raster
// order. While active it outranks every other port consumer, so a full
// clear takes exactly Size() ticks once started.
type ClearSequencer struct {
	active bool
	addr   int
	size   int
}

// NewClearSequencer creates a sequencer for a store of the given size.
func NewClearSequencer(size int) *ClearSequencer {
	return &ClearSequencer{size: size}
}

// Start begins a clear pass. A clear already in progress is unaffected.
func (c *ClearSequencer) Start() {
	if c.active {
		return
	}
	c.active = true
	c.addr = 0
}

// Busy reports whether a clear pass is in progress.
func (c *ClearSequencer) Busy() bool { return c.active }

// Submit registers this tick's zero-write, if a pass is active.
func (c *ClearSequencer) Submit(p *Port) {
	if !c.active {
		return
	}
	// Clear always wins arbitration, so Submit cannot collide; the error
	// can only be a programming mistake and is ignored.
	_ = p.Submit(SourceClear, Request{Op: OpWrite, Addr: c.addr})
}

// Observe advances the sequencer after a Step. The address moves only when
// this tick's write was actually admitted.
func (c *ClearSequencer) Observe(admitted Source, ok bool) {
	if !c.active || !ok || admitted != SourceClear {
		return
	}
	c.addr++
	if c.addr >= c.size {
		c.active = false
	}
}
