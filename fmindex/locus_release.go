//go:build !rowchasedebug

package fmindex

// DebugChecks reports whether locus protocol checks are compiled in.
const DebugChecks = false

type locusCheck struct{}

func (locusCheck) markValid()         {}
func (locusCheck) invalidate()        {}
func (locusCheck) assertValid(string) {}
func (locusCheck) consume()           {}
