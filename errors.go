package rowchase

import (
	"errors"
	"fmt"

	"github.com/hupe1980/rowchase/blobstore"
	"github.com/hupe1980/rowchase/chase"
	"github.com/hupe1980/rowchase/fmindex"
	"github.com/hupe1980/rowchase/internal/resource"
)

var (
	// ErrNotFound is returned when the index blob does not exist.
	ErrNotFound = errors.New("index not found")

	// ErrClosed is returned by a Resolver after Close.
	ErrClosed = errors.New("resolver closed")

	// ErrCorrupt is returned when the index fails to decode or a walk
	// through it hits an impossible step.
	ErrCorrupt = errors.New("corrupt index")

	// ErrChanged is returned when the index blob was replaced while it was
	// being loaded.
	ErrChanged = errors.New("index changed during load")

	// ErrMemoryLimit is returned when loading an index would exceed the
	// configured memory limit.
	ErrMemoryLimit = errors.New("index exceeds memory limit")
)

// ErrRowOutOfRange indicates a row outside the index matrix.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrRowOutOfRange struct {
	Row   uint32
	Len   uint32
	cause error
}

func (e *ErrRowOutOfRange) Error() string {
	return fmt.Sprintf("row %d out of range [0, %d)", e.Row, e.Len)
}

func (e *ErrRowOutOfRange) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if errors.Is(err, blobstore.ErrChanged) {
		return fmt.Errorf("%w: %w", ErrChanged, err)
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrMemoryLimit, err)
	}

	switch {
	case errors.Is(err, chase.ErrCorruptIndex),
		errors.Is(err, fmindex.ErrCorrupt),
		errors.Is(err, fmindex.ErrBadMagic),
		errors.Is(err, fmindex.ErrUnsupportedVersion),
		errors.Is(err, fmindex.ErrUnknownCodec),
		errors.Is(err, fmindex.ErrUnknownCompression),
		errors.Is(err, fmindex.ErrInvalidParams):
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	return err
}
