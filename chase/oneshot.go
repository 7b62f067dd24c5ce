package chase

import "github.com/hupe1980/rowchase/fmindex"

// FlatOffset resolves row to a joined-text offset without pipelining.
func FlatOffset(idx Index, qlen, row uint32) (uint32, error) {
	c := New(idx)
	if err := run(c, qlen, row); err != nil {
		return 0, err
	}
	off, _ := c.FlatOffset()
	return off, nil
}

// SplitOffset resolves row to a reference coordinate without pipelining.
func SplitOffset(idx Index, qlen, row uint32) (fmindex.Coord, error) {
	c := New(idx)
	if err := run(c, qlen, row); err != nil {
		return fmindex.Coord{}, err
	}
	return c.SplitOffset()
}

func run(c *Chaser, qlen, row uint32) error {
	if err := c.Start(row, qlen); err != nil {
		return err
	}
	for !c.Done() {
		if err := c.Advance(); err != nil {
			return err
		}
	}
	return nil
}
