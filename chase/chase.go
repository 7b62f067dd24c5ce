package chase

import (
	"fmt"

	"github.com/hupe1980/rowchase/fmindex"
)

// Index is the read-only index view a Chaser walks.
type Index interface {
	// Params returns the index shape parameters.
	Params() fmindex.Params
	// Sample returns the joined offset stored for sample slot i.
	Sample(i uint32) uint32
	// BWT returns the raw transform data loci are resolved against.
	BWT() []byte
	// MapLF performs one backward step from a resolved locus.
	MapLF(l *fmindex.SideLocus) uint32
	// JoinedToTextOff converts a joined offset into a reference coordinate.
	JoinedToTextOff(qlen, off uint32) fmindex.Coord
}

// State is the protocol state of a Chaser.
type State uint8

const (
	// StateInitialized: no row has been started, or the last chase failed.
	StateInitialized State = iota
	// StateAwaitingPrefetch: the current row needs Prepare before Advance.
	StateAwaitingPrefetch
	// StatePrefetchPending: the current row's locus is prefetched; Advance may run.
	StatePrefetchPending
	// StateTerminated: the flat offset is known.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateAwaitingPrefetch:
		return "awaiting-prefetch"
	case StatePrefetchPending:
		return "prefetch-pending"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

type options struct {
	deferred bool
}

// Option configures a Chaser.
type Option func(*options)

// WithDeferredPrefetch stops Start and Advance from issuing the next
// prefetch themselves. The caller must call Prepare before every Advance.
func WithDeferredPrefetch() Option {
	return func(o *options) {
		o.deferred = true
	}
}

// Chaser resolves one row at a time. See the package documentation.
type Chaser struct {
	idx    Index
	params fmindex.Params
	bwt    []byte
	opts   options

	state  State
	row    uint32
	qlen   uint32
	steps  uint32
	off    uint32
	refLen uint32
	locus  fmindex.SideLocus
}

// New returns a Chaser over idx. idx must outlive the Chaser.
func New(idx Index, optFns ...Option) *Chaser {
	c := &Chaser{
		idx:    idx,
		params: idx.Params(),
		bwt:    idx.BWT(),
	}
	for _, fn := range optFns {
		fn(&c.opts)
	}
	return c
}

// Start begins resolving row for a hit of length qlen, discarding any chase
// in progress. Rows of known offset terminate immediately; otherwise the
// first prefetch is issued.
func (c *Chaser) Start(row, qlen uint32) error {
	if row >= c.params.Len {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidRow, row, c.params.Len)
	}
	if qlen == 0 {
		return ErrInvalidQueryLength
	}

	c.row = row
	c.qlen = qlen
	c.steps = 0
	c.refLen = 0
	c.locus.Invalidate()

	if c.terminate() {
		return nil
	}
	c.state = StateAwaitingPrefetch
	if c.opts.deferred {
		return nil
	}
	return c.Prepare()
}

// terminate checks whether the current row has a known offset and, if so,
// records it.
func (c *Chaser) terminate() bool {
	switch {
	case c.row == c.params.ZOff:
		c.off = c.steps
	case c.params.IsSampled(c.row):
		c.off = c.idx.Sample(c.params.SampleIndex(c.row)) + c.steps
	default:
		return false
	}
	c.state = StateTerminated
	return true
}

// Prepare resolves the locus of the current row and issues its prefetch.
// It is a no-op once the chase has terminated.
func (c *Chaser) Prepare() error {
	switch c.state {
	case StateTerminated:
		return nil
	case StateInitialized:
		return ErrNotStarted
	case StatePrefetchPending:
		return ErrPrefetchPending
	}

	c.locus.InitFromRow(c.row, &c.params, c.bwt)
	c.locus.Prefetch()
	c.state = StatePrefetchPending
	return nil
}

// Advance consumes the pending prefetch and takes one backward step. If the
// chase is still running afterwards, the next prefetch is issued.
func (c *Chaser) Advance() error {
	switch c.state {
	case StateTerminated:
		return ErrTerminated
	case StateInitialized:
		return ErrNotStarted
	case StateAwaitingPrefetch:
		return ErrNoPendingPrefetch
	}

	next := c.idx.MapLF(&c.locus)
	c.locus.Invalidate()
	c.steps++

	if next == c.row {
		return c.fail("backward step is a self-loop")
	}
	if next >= c.params.Len {
		return c.fail(fmt.Sprintf("backward step to row %d leaves the matrix", next))
	}
	// Every text position is at most Len-1 steps from the start row.
	if c.steps >= c.params.Len {
		return c.fail("walk exceeds the text length")
	}

	c.row = next
	if c.terminate() {
		return nil
	}
	c.state = StateAwaitingPrefetch
	if c.opts.deferred {
		return nil
	}
	return c.Prepare()
}

func (c *Chaser) fail(reason string) error {
	err := &CorruptIndexError{Row: c.row, Steps: c.steps, Reason: reason}
	c.state = StateInitialized
	return err
}

// Done reports whether the flat offset is known.
func (c *Chaser) Done() bool { return c.state == StateTerminated }

// State returns the protocol state.
func (c *Chaser) State() State { return c.state }

// Row returns the current row of the walk.
func (c *Chaser) Row() uint32 { return c.row }

// Steps returns the number of backward steps taken since Start.
func (c *Chaser) Steps() uint32 { return c.steps }

// FlatOffset returns the joined-text offset of the started row. ok is false
// until the chase terminates.
func (c *Chaser) FlatOffset() (off uint32, ok bool) {
	if c.state != StateTerminated {
		return 0, false
	}
	return c.off, true
}

// SplitOffset converts the flat offset into a reference coordinate. A hit
// straddling two fragments yields an unresolved Coord and a nil error.
func (c *Chaser) SplitOffset() (fmindex.Coord, error) {
	if c.state != StateTerminated {
		return fmindex.Coord{}, ErrNotTerminated
	}
	coord := c.idx.JoinedToTextOff(c.qlen, c.off)
	c.refLen = coord.RefLen
	return coord, nil
}

// RefLen returns the reference length found by the last SplitOffset.
func (c *Chaser) RefLen() uint32 { return c.refLen }
