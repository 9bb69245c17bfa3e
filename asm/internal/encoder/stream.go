package encoder

import (
	"github.com/bits-and-blooms/bitset"
)

// Stream is an append-only bit sequence. Bit i of the stream is bit i of the
// backing set; Len tracks how many bits have been written, including
// trailing zeros.
type Stream struct {
	bits *bitset.BitSet
	n    uint
}

func NewStream() *Stream {
	return &Stream{bits: bitset.New(256)}
}

func (s *Stream) Len() uint {
	return s.n
}

func (s *Stream) Bit(i uint) bool {
	return i < s.n && s.bits.Test(i)
}

func (s *Stream) WriteBit(v bool) {
	if v {
		s.bits.Set(s.n)
	}
	s.n++
}

// WritePattern appends a string of '0' and '1' characters in order.
func (s *Stream) WritePattern(pattern string) {
	for i := 0; i < len(pattern); i++ {
		s.WriteBit(pattern[i] == '1')
	}
}

// WriteUint appends the low width bits of v, least-significant bit first.
func (s *Stream) WriteUint(v uint64, width int) {
	for i := 0; i < width; i++ {
		s.WriteBit(v&(1<<i) != 0)
	}
}

// PutUint overwrites width bits starting at pos with v, least-significant
// bit first. The range must already have been written.
func (s *Stream) PutUint(pos uint, v uint64, width int) {
	for i := 0; i < width; i++ {
		s.bits.SetTo(pos+uint(i), v&(1<<i) != 0)
	}
}

// Uint reads width bits starting at pos, least-significant bit first.
func (s *Stream) Uint(pos uint, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		if s.Bit(pos + uint(i)) {
			v |= 1 << i
		}
	}
	return v
}

// Bytes zero pads the stream to a whole number of bytes and packs it, the
// first bit of each group of eight becoming the most significant bit.
func (s *Stream) Bytes() []byte {
	out := make([]byte, (s.n+7)/8)
	for i, ok := s.bits.NextSet(0); ok && i < s.n; i, ok = s.bits.NextSet(i + 1) {
		out[i/8] |= 0x80 >> (i % 8)
	}
	return out
}
