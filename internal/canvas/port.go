package canvas

// ReadLatency is the number of ticks between an admitted read and its
// result becoming visible.
const ReadLatency = 2

// Source identifies a port requester. Lower values win arbitration.
type Source uint8

const (
	SourceClear Source = iota
	SourceDraw
	SourceScan
	numSources
)

func (s Source) String() string {
	switch s {
	case SourceClear:
		return "clear"
	case SourceDraw:
		return "draw"
	case SourceScan:
		return "scan"
	}
	return "unknown"
}

// Op selects between a port write and a port read.
type Op uint8

const (
	OpWrite Op = iota
	OpRead
)

// Request is one candidate port access for the current tick.
type Request struct {
	Op   Op
	Addr int
	Bit  bool // payload for writes, ignored for reads
}

type pendingRead struct {
	src  Source
	addr int
	due  uint64
}

// Port is the single access port in front of a Bitmap. Requests submitted
// between Steps compete at the next Step; exactly one is admitted per tick.
// Admitted writes mutate the bitmap at that tick boundary; admitted reads
// deliver their bit ReadLatency ticks later via Result.
type Port struct {
	bm       *Bitmap
	now      uint64
	slots    [numSources]*Request
	inflight []pendingRead
	results  [numSources]*bool
}

// NewPort wraps a bitmap with an arbitrated access port.
func NewPort(bm *Bitmap) *Port {
	return &Port{bm: bm}
}

// Bitmap exposes the underlying surface for snapshotting and tests. Cycle-
// accurate consumers must go through Submit/Step/Result instead.
func (p *Port) Bitmap() *Bitmap { return p.bm }

// Now returns the current tick count.
func (p *Port) Now() uint64 { return p.now }

// Submit registers src's candidate request for the next Step. Out-of-range
// addresses are rejected here and never reach the store.
func (p *Port) Submit(src Source, req Request) error {
	if req.Addr < 0 || req.Addr >= p.bm.Size() {
		return ErrOutOfBounds
	}
	if p.slots[src] != nil {
		return ErrSlotTaken
	}
	r := req
	p.slots[src] = &r
	return nil
}

// Step advances one tick: delivers read results that come due, admits the
// highest-priority pending request, and clears all request slots. Losers
// must re-submit on a later tick.
func (p *Port) Step() (admitted Source, ok bool) {
	p.now++

	for i := range p.results {
		p.results[i] = nil
	}
	keep := p.inflight[:0]
	for _, r := range p.inflight {
		if r.due == p.now {
			bit := p.bm.Get(r.addr)
			p.results[r.src] = &bit
		} else {
			keep = append(keep, r)
		}
	}
	p.inflight = keep

	var winner *Request
	for src := SourceClear; src < numSources; src++ {
		if p.slots[src] != nil {
			winner = p.slots[src]
			admitted, ok = src, true
			break
		}
	}
	p.slots = [numSources]*Request{}
	if !ok {
		return 0, false
	}

	switch winner.Op {
	case OpWrite:
		p.bm.Set(winner.Addr, winner.Bit)
	case OpRead:
		p.inflight = append(p.inflight, pendingRead{
			src:  admitted,
			addr: winner.Addr,
			due:  p.now + ReadLatency,
		})
	}
	return admitted, true
}

// Result returns the bit delivered to src on this tick, if any. The value
// is valid only during the tick it comes due.
func (p *Port) Result(src Source) (bit, ok bool) {
	r := p.results[src]
	if r == nil {
		return false, false
	}
	return *r, true
}

// DropReads abandons all in-flight reads for src. Used when a higher-
// priority operation cancels a scan mid-flight.
func (p *Port) DropReads(src Source) {
	keep := p.inflight[:0]
	for _, r := range p.inflight {
		if r.src != src {
			keep = append(keep, r)
		}
	}
	p.inflight = keep
	p.results[src] = nil
}
