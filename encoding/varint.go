package encoding

// This file implements "varint" encoding of unsigned 64-bit integers:
// values are serialized 7 bits at a time, starting with the least significant
// bits, and the most significant bit of each output byte marks a continuation.

import (
	"io"

	"github.com/pkg/errors"
)

// MaxVarintLen64 is the maximum length of a varint-encoded 64-bit integer.
const MaxVarintLen64 = 10

var errVarintOverflow = errors.New("varint overflows a 64-bit integer")

func UintToBuf(xx uint64) []byte {
	scratchBytes := make([]byte, MaxVarintLen64)
	nn := PutUvarint(scratchBytes, xx)
	return scratchBytes[:nn]
}

// PutUvarint encodes a uint64 into buf and returns the number of bytes written.
// If the buffer is too small, PutUvarint will panic.
func PutUvarint(buf []byte, x uint64) int {
	i := 0
	for x >= 0x80 {
		buf[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	buf[i] = byte(x)
	return i + 1
}

// ReadUvarint reads an encoded unsigned integer from r and returns it as a uint64.
func ReadUvarint(r io.ByteReader) (uint64, error) {
	var x uint64
	var s uint
	for i := 0; i < MaxVarintLen64; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return x, err
		}
		if b < 0x80 {
			if i > 9 || i == 9 && b > 1 {
				return x, errVarintOverflow
			}
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return x, errVarintOverflow
}
