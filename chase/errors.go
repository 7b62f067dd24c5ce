package chase

import (
	"errors"
	"fmt"
)

var (
	// ErrNotStarted is returned by Prepare and Advance before Start.
	ErrNotStarted = errors.New("chase: not started")

	// ErrTerminated is returned by Advance once the offset is known.
	ErrTerminated = errors.New("chase: already terminated")

	// ErrNoPendingPrefetch is returned by Advance when no prefetch was issued
	// for the current row.
	ErrNoPendingPrefetch = errors.New("chase: advance without a pending prefetch")

	// ErrPrefetchPending is returned by Prepare when the previous prefetch has
	// not been consumed yet.
	ErrPrefetchPending = errors.New("chase: prefetch already pending")

	// ErrNotTerminated is returned by SplitOffset before the offset is known.
	ErrNotTerminated = errors.New("chase: offset not yet resolved")

	// ErrInvalidRow is returned by Start for rows outside the index.
	ErrInvalidRow = errors.New("chase: invalid row")

	// ErrInvalidQueryLength is returned by Start for a zero query length.
	ErrInvalidQueryLength = errors.New("chase: query length must be positive")

	// ErrCorruptIndex is matched by every CorruptIndexError.
	ErrCorruptIndex = errors.New("chase: corrupt index")
)

// CorruptIndexError reports a backward step that cannot happen in a well
// formed index. The chase is abandoned and must be restarted.
type CorruptIndexError struct {
	Row    uint32
	Steps  uint32
	Reason string
}

func (e *CorruptIndexError) Error() string {
	return fmt.Sprintf("chase: corrupt index at row %d after %d steps: %s", e.Row, e.Steps, e.Reason)
}

func (e *CorruptIndexError) Unwrap() error { return ErrCorruptIndex }
