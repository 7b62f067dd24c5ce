//go:build rowchasedebug

package fmindex

import "fmt"

// DebugChecks reports whether locus protocol checks are compiled in.
const DebugChecks = true

const (
	locusInvalid uint8 = iota
	locusValid
	locusConsumed
)

type locusCheck struct {
	state uint8
}

func (c *locusCheck) markValid()  { c.state = locusValid }
func (c *locusCheck) invalidate() { c.state = locusInvalid }

func (c *locusCheck) assertValid(op string) {
	if c.state != locusValid {
		panic(fmt.Sprintf("fmindex: %s on a locus in state %d", op, c.state))
	}
}

func (c *locusCheck) consume() {
	c.assertValid("MapLF")
	c.state = locusConsumed
}
