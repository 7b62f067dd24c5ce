package fmindex

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how index sections are stored.
type Compression uint8

const (
	// CompressionNone stores sections raw. Raw transform data is used in
	// place when the source bytes are memory-mapped.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast to load).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (smaller files).
	CompressionZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// sectionBlockSize bounds a single compressed block.
const sectionBlockSize = 4 << 20

// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...]
// CompressedSize == 0 marks a block stored uncompressed.
const blockHeaderSize = 8

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// compressSection splits data into blocks and compresses each one.
func compressSection(data []byte, c Compression) ([]byte, error) {
	if c == CompressionNone {
		return data, nil
	}

	var out []byte
	for len(data) > 0 {
		n := min(len(data), sectionBlockSize)
		block, err := compressBlock(data[:n], c)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		data = data[n:]
	}
	return out, nil
}

func compressBlock(data []byte, c Compression) ([]byte, error) {
	var compressed []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case CompressionZSTD:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}

	header := make([]byte, blockHeaderSize, blockHeaderSize+len(data))
	binary.LittleEndian.PutUint32(header[0:], uint32(len(data)))

	// Incompressible blocks (lz4 returns 0) are stored as is.
	if len(compressed) == 0 || len(compressed) >= len(data) {
		return append(header, data...), nil
	}
	binary.LittleEndian.PutUint32(header[4:], uint32(len(compressed)))
	return append(header, compressed...), nil
}

// decompressSection reverses compressSection; rawLen is the expected
// decompressed size.
func decompressSection(data []byte, rawLen uint64, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		if uint64(len(data)) != rawLen {
			return nil, errors.New("raw section size mismatch")
		}
		return data, nil
	case CompressionLZ4, CompressionZSTD:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, c)
	}

	out := make([]byte, 0, rawLen)
	for len(data) > 0 {
		if len(data) < blockHeaderSize {
			return nil, errors.New("block too small for header")
		}
		uncompressedSize := binary.LittleEndian.Uint32(data[0:])
		compressedSize := binary.LittleEndian.Uint32(data[4:])
		data = data[blockHeaderSize:]

		if uncompressedSize > sectionBlockSize || uint64(uncompressedSize) > rawLen-uint64(len(out)) {
			return nil, fmt.Errorf("block of %d bytes overruns section", uncompressedSize)
		}

		if compressedSize == 0 {
			if uint32(len(data)) < uncompressedSize {
				return nil, errors.New("block data too small")
			}
			out = append(out, data[:uncompressedSize]...)
			data = data[uncompressedSize:]
			continue
		}
		if uint32(len(data)) < compressedSize {
			return nil, errors.New("compressed block data too small")
		}

		block, err := decompressBlock(data[:compressedSize], int(uncompressedSize), c)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
		data = data[compressedSize:]
	}

	if uint64(len(out)) != rawLen {
		return nil, errors.New("decompressed section size mismatch")
	}
	return out, nil
}

func decompressBlock(data []byte, size int, c Compression) ([]byte, error) {
	result := make([]byte, size)
	if c == CompressionLZ4 {
		n, err := lz4.UncompressBlock(data, result)
		if err != nil {
			return nil, err
		}
		if n != size {
			return nil, errors.New("decompressed size mismatch")
		}
		return result, nil
	}

	dec := getZstdDecoder()
	defer zstdDecoderPool.Put(dec)

	decoded, err := dec.DecodeAll(data, result[:0])
	if err != nil {
		return nil, err
	}
	if len(decoded) != size {
		return nil, errors.New("decompressed size mismatch")
	}
	return decoded, nil
}
