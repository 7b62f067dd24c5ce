package fmindex

const (
	// SideBytes is the size of one side of transform data (one cache line).
	SideBytes = 64

	sideHeaderBytes = 16

	// SideRows is the number of rows packed into one side.
	SideRows = (SideBytes - sideHeaderBytes) * 4

	// MaxOffRate is the largest supported sampling rate exponent.
	MaxOffRate = 31
)

// Params are the fixed shape parameters of an index.
type Params struct {
	// Len is the number of rows in the transform matrix: the joined text
	// length plus one for the end-of-text marker.
	Len uint32 `json:"len"`

	// OffRate is log2 of the sampling stride. Rows whose low OffRate bits
	// are zero carry a precomputed text offset.
	OffRate uint32 `json:"off_rate"`

	// ZOff is the start-of-reference row: the row of joined offset 0.
	ZOff uint32 `json:"z_off"`
}

// Validate checks the parameters for internal consistency.
func (p *Params) Validate() error {
	switch {
	case p.Len == 0:
		return &ParamsError{Field: "len", Value: 0, Reason: "must be positive"}
	case p.OffRate > MaxOffRate:
		return &ParamsError{Field: "off_rate", Value: uint64(p.OffRate), Reason: "must be at most 31"}
	case p.ZOff >= p.Len:
		return &ParamsError{Field: "z_off", Value: uint64(p.ZOff), Reason: "must be a valid row"}
	}
	return nil
}

// Stride returns the sampling stride, 2^OffRate.
func (p *Params) Stride() uint32 { return 1 << p.OffRate }

// OffMask returns the mask that keeps a sampled row unchanged.
func (p *Params) OffMask() uint32 { return ^uint32(0) << p.OffRate }

// IsSampled reports whether row has a stored offset.
func (p *Params) IsSampled(row uint32) bool { return row&p.OffMask() == row }

// SampleIndex maps a sampled row to its slot in the sample table.
func (p *Params) SampleIndex(row uint32) uint32 { return row >> p.OffRate }

// NumSamples returns the size of the sample table.
func (p *Params) NumSamples() uint32 { return (p.Len-1)>>p.OffRate + 1 }

// NumSides returns the number of sides holding the transform.
func (p *Params) NumSides() uint32 {
	return uint32((uint64(p.Len) + SideRows - 1) / SideRows)
}

// TextLen returns the length of the joined text.
func (p *Params) TextLen() uint32 { return p.Len - 1 }
