package fmindex

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams is returned when index parameters are inconsistent.
	ErrInvalidParams = errors.New("fmindex: invalid parameters")

	// ErrCorrupt is returned when index data violates a structural invariant.
	ErrCorrupt = errors.New("fmindex: corrupt index")

	// ErrBadMagic is returned when decoding data that is not an index file.
	ErrBadMagic = errors.New("fmindex: bad magic")

	// ErrUnsupportedVersion is returned for index files written by a newer format.
	ErrUnsupportedVersion = errors.New("fmindex: unsupported format version")

	// ErrUnknownCodec is returned when the manifest codec is not registered.
	ErrUnknownCodec = errors.New("fmindex: unknown manifest codec")

	// ErrUnknownCompression is returned for an unrecognized section compression.
	ErrUnknownCompression = errors.New("fmindex: unknown compression")
)

// ParamsError describes a rejected parameter.
type ParamsError struct {
	Field  string
	Value  uint64
	Reason string
}

func (e *ParamsError) Error() string {
	return fmt.Sprintf("fmindex: invalid %s %d: %s", e.Field, e.Value, e.Reason)
}

func (e *ParamsError) Unwrap() error { return ErrInvalidParams }

// CorruptError describes the first structural violation found in an index.
type CorruptError struct {
	Row    uint32
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("fmindex: corrupt index at row %d: %s", e.Row, e.Reason)
}

func (e *CorruptError) Unwrap() error { return ErrCorrupt }
