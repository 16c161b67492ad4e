package buffer

import (
	"encoding/binary"
	"math"
)

const (
	// TrailerSize is the number of bytes reserved at the end of every buffer
	// for the root position, flavor byte and layout fingerprint.
	TrailerSize = 16

	// DefaultSize is the capacity of buffers allocated by a Pool without WithSize.
	DefaultSize = 16 << 20

	// MaxSize keeps every position addressable by a u32 and the trailer
	// 16-byte aligned.
	MaxSize = 1<<31 - 16

	minSize = 64
)

// Buffer is a fixed-capacity region holding one encoded tree.
//
// Positions are byte offsets from the start of the region. All accessors are
// little-endian and perform no validation beyond Go's slice bounds checks.
type Buffer struct {
	pool *Pool
	data []byte
	gen  uint64
	id   int
	out  bool
}

// New allocates a standalone buffer that does not belong to a pool.
func New(size int) *Buffer {
	return &Buffer{data: make([]byte, clampSize(size))}
}

func clampSize(size int) int {
	if size < minSize {
		size = minSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return size &^ 15
}

// Bytes returns the whole underlying region.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the buffer capacity in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Generation is bumped every time the buffer is returned to its pool.
// Node references taken in an earlier generation are invalid.
func (b *Buffer) Generation() uint64 { return b.gen }

// ID identifies the buffer within its pool (0 for standalone buffers).
func (b *Buffer) ID() int { return b.id }

// U8 reads a byte.
func (b *Buffer) U8(pos uint32) uint8 { return b.data[pos] }

// U32 reads a little-endian u32.
func (b *Buffer) U32(pos uint32) uint32 {
	return binary.LittleEndian.Uint32(b.data[pos:])
}

// U64 reads two consecutive u32 words as low + high*2^32.
func (b *Buffer) U64(pos uint32) uint64 {
	return uint64(b.U32(pos)) | uint64(b.U32(pos+4))<<32
}

// F64 reads a little-endian IEEE 754 double.
func (b *Buffer) F64(pos uint32) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b.data[pos:]))
}

// Bool reads a byte; only the value 1 is true.
func (b *Buffer) Bool(pos uint32) bool { return b.data[pos] == 1 }

// Slice returns length bytes starting at pos without copying.
func (b *Buffer) Slice(pos, length uint32) []byte {
	return b.data[pos : pos+length]
}

// PutU8 writes a byte.
func (b *Buffer) PutU8(pos uint32, v uint8) { b.data[pos] = v }

// PutU32 writes a little-endian u32.
func (b *Buffer) PutU32(pos uint32, v uint32) {
	binary.LittleEndian.PutUint32(b.data[pos:], v)
}

// PutU64 writes v as low and high u32 words.
func (b *Buffer) PutU64(pos uint32, v uint64) {
	b.PutU32(pos, uint32(v))
	b.PutU32(pos+4, uint32(v>>32))
}

// PutF64 writes a little-endian IEEE 754 double.
func (b *Buffer) PutF64(pos uint32, v float64) {
	binary.LittleEndian.PutUint64(b.data[pos:], math.Float64bits(v))
}

// PutBool writes 1 or 0.
func (b *Buffer) PutBool(pos uint32, v bool) {
	if v {
		b.data[pos] = 1
	} else {
		b.data[pos] = 0
	}
}

// Write copies p to pos.
func (b *Buffer) Write(pos uint32, p []byte) {
	copy(b.data[pos:], p)
}

// Clear zeroes the first n bytes and the trailer.
func (b *Buffer) Clear(n int) {
	if n > len(b.data) {
		n = len(b.data)
	}
	clear(b.data[:n])
	clear(b.data[len(b.data)-TrailerSize:])
}
