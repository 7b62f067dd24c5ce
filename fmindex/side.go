package fmindex

import (
	"encoding/binary"
	"fmt"
)

// occTable[c][b] counts symbol c among the four symbols packed in byte b.
var occTable [4][256]uint8

func init() {
	for b := 0; b < 256; b++ {
		for i := 0; i < 4; i++ {
			occTable[(b>>(2*i))&3][b]++
		}
	}
}

// packSides lays out one symbol per row into sides and returns the total
// count of each symbol, excluding the zOff row.
func packSides(bwt []byte, p *Params) ([]byte, [4]uint32, error) {
	var occ [4]uint32

	out := make([]byte, int(p.NumSides())*SideBytes)
	for s := 0; s < int(p.NumSides()); s++ {
		side := out[s*SideBytes : (s+1)*SideBytes]
		for c := 0; c < 4; c++ {
			binary.LittleEndian.PutUint32(side[4*c:], occ[c])
		}

		payload := side[sideHeaderBytes:]
		start := s * SideRows
		end := min(start+SideRows, len(bwt))
		for r := start; r < end; r++ {
			if uint32(r) == p.ZOff {
				continue
			}
			c := bwt[r]
			if c > 3 {
				return nil, occ, fmt.Errorf("%w: symbol %d at row %d", ErrInvalidParams, c, r)
			}
			occ[c]++
			i := r - start
			payload[i>>2] |= c << ((i & 3) << 1)
		}
	}
	return out, occ, nil
}

func sideOcc(side []byte, c byte) uint32 {
	return binary.LittleEndian.Uint32(side[4*int(c):])
}

func sideChar(side []byte, i uint32) byte {
	return (side[sideHeaderBytes+int(i>>2)] >> ((i & 3) << 1)) & 3
}

// sideCount counts symbol c among the first n rows of a side.
func sideCount(side []byte, c byte, n uint32) uint32 {
	payload := side[sideHeaderBytes:]
	var cnt uint32
	full := int(n >> 2)
	for _, b := range payload[:full] {
		cnt += uint32(occTable[c][b])
	}
	if rem := n & 3; rem > 0 {
		b := payload[full]
		for i := uint32(0); i < rem; i++ {
			if (b>>(i<<1))&3 == c {
				cnt++
			}
		}
	}
	return cnt
}
