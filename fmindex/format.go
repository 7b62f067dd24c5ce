package fmindex

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/hupe1980/rowchase/codec"
)

// File layout:
//
//	[0:4)   magic "RCFM"
//	[4:6)   format version (LE uint16)
//	[6]     section compression
//	[7]     codec name length
//	[8:12)  manifest length (LE uint32)
//	[12:16) reserved, zero
//	codec name, manifest, padding to 64 bytes
//	sections, each starting on a 64-byte boundary of the data region
const (
	formatVersion  uint16 = 1
	headerSize            = 16
	sectionAlign          = 64
	sectionSides          = "sides"
	sectionSamples        = "samples"
)

var magic = [4]byte{'R', 'C', 'F', 'M'}

type section struct {
	Name      string `json:"name"`
	Offset    uint64 `json:"offset"`
	Length    uint64 `json:"length"`
	RawLength uint64 `json:"raw_length"`
}

type manifest struct {
	Params     Params      `json:"params"`
	Fchr       [5]uint32   `json:"fchr"`
	References []Reference `json:"references"`
	Fragments  []Fragment  `json:"fragments"`
	Sections   []section   `json:"sections"`
}

type writeOptions struct {
	compression Compression
	codec       codec.Codec
}

// WriteOption configures Write.
type WriteOption func(*writeOptions)

// WithCompression sets the section compression. Default: CompressionNone.
func WithCompression(c Compression) WriteOption {
	return func(o *writeOptions) {
		o.compression = c
	}
}

// WithCodec sets the manifest codec. If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) WriteOption {
	return func(o *writeOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

func align(n uint64) uint64 {
	return (n + sectionAlign - 1) &^ (sectionAlign - 1)
}

// Write serializes idx to w and returns the number of bytes written.
func Write(w io.Writer, idx *Index, optFns ...WriteOption) (int64, error) {
	o := writeOptions{codec: codec.Default}
	for _, fn := range optFns {
		fn(&o)
	}
	if len(o.codec.Name()) > 255 {
		return 0, fmt.Errorf("fmindex: codec name %q too long", o.codec.Name())
	}

	samples := make([]byte, 4*len(idx.offs))
	for i, v := range idx.offs {
		binary.LittleEndian.PutUint32(samples[4*i:], v)
	}

	raw := []struct {
		name string
		data []byte
	}{
		{sectionSides, idx.sides},
		{sectionSamples, samples},
	}

	m := manifest{
		Params:     idx.params,
		Fchr:       idx.fchr,
		References: idx.refs.refs,
		Fragments:  idx.refs.frags,
	}
	payloads := make([][]byte, len(raw))
	var dataLen uint64
	for i, s := range raw {
		data, err := compressSection(s.data, o.compression)
		if err != nil {
			return 0, fmt.Errorf("fmindex: compress %s: %w", s.name, err)
		}
		payloads[i] = data
		m.Sections = append(m.Sections, section{
			Name:      s.name,
			Offset:    dataLen,
			Length:    uint64(len(data)),
			RawLength: uint64(len(s.data)),
		})
		dataLen = align(dataLen + uint64(len(data)))
	}

	mb, err := o.codec.Marshal(&m)
	if err != nil {
		return 0, fmt.Errorf("fmindex: encode manifest: %w", err)
	}

	var header [headerSize]byte
	copy(header[0:4], magic[:])
	binary.LittleEndian.PutUint16(header[4:], formatVersion)
	header[6] = byte(o.compression)
	header[7] = byte(len(o.codec.Name()))
	binary.LittleEndian.PutUint32(header[8:], uint32(len(mb)))

	cw := &countingWriter{w: w}
	cw.write(header[:])
	cw.write([]byte(o.codec.Name()))
	cw.write(mb)
	cw.pad()
	for _, p := range payloads {
		cw.write(p)
		cw.pad()
	}
	return cw.n, cw.err
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) write(p []byte) {
	if c.err != nil || len(p) == 0 {
		return
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
}

func (c *countingWriter) pad() {
	if rem := int(uint64(c.n) % sectionAlign); rem != 0 {
		c.write(make([]byte, sectionAlign-rem))
	}
}

// Decode parses an index file. When sections are stored uncompressed the
// returned Index references data directly, so data must stay valid and
// unmodified for the lifetime of the Index.
func Decode(data []byte) (*Index, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrBadMagic, len(data))
	}
	if [4]byte(data[0:4]) != magic {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(data[4:]); v != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	comp := Compression(data[6])
	nameLen := uint64(data[7])
	manifestLen := uint64(binary.LittleEndian.Uint32(data[8:]))

	if uint64(len(data)) < headerSize+nameLen+manifestLen {
		return nil, fmt.Errorf("%w: truncated manifest", ErrCorrupt)
	}
	name := string(data[headerSize : headerSize+nameLen])
	c, ok := codec.ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	var m manifest
	mStart := headerSize + nameLen
	if err := c.Unmarshal(data[mStart:mStart+manifestLen], &m); err != nil {
		return nil, fmt.Errorf("%w: manifest: %v", ErrCorrupt, err)
	}
	if err := m.Params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	// Section sizes follow from the params, so nothing is allocated on the
	// strength of a length read from the file alone.
	rawLens := map[string]uint64{
		sectionSides:   uint64(m.Params.NumSides()) * SideBytes,
		sectionSamples: uint64(m.Params.NumSamples()) * 4,
	}

	var region []byte
	if start := align(mStart + manifestLen); start < uint64(len(data)) {
		region = data[start:]
	}
	sections := make(map[string][]byte, len(m.Sections))
	for _, s := range m.Sections {
		want, known := rawLens[s.Name]
		if !known {
			continue
		}
		if s.RawLength != want {
			return nil, fmt.Errorf("%w: section %s holds %d bytes, want %d", ErrCorrupt, s.Name, s.RawLength, want)
		}
		if s.Offset > uint64(len(region)) || s.Length > uint64(len(region))-s.Offset {
			return nil, fmt.Errorf("%w: section %s out of bounds", ErrCorrupt, s.Name)
		}
		raw, err := decompressSection(region[s.Offset:s.Offset+s.Length], s.RawLength, comp)
		if err != nil {
			return nil, fmt.Errorf("%w: section %s: %w", ErrCorrupt, s.Name, err)
		}
		sections[s.Name] = raw
	}

	sides, ok := sections[sectionSides]
	if !ok {
		return nil, fmt.Errorf("%w: missing section %s", ErrCorrupt, sectionSides)
	}
	samples, ok := sections[sectionSamples]
	if !ok || len(samples)%4 != 0 {
		return nil, fmt.Errorf("%w: missing or malformed section %s", ErrCorrupt, sectionSamples)
	}
	offs := make([]uint32, len(samples)/4)
	for i := range offs {
		offs[i] = binary.LittleEndian.Uint32(samples[4*i:])
	}

	return newIndex(m.Params, sides, m.Fchr, offs, m.References, m.Fragments)
}
