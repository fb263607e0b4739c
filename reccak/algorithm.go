package reccak

import (
	"encoding/binary"

	"github.com/deso-protocol/reccak/reccak/keccakf400"
)

// DigestLanes is the number of 16-bit lanes in a Digest.
const DigestLanes = 8

// Digest is the 128-bit hash output. Two digests are equal iff every lane is.
type Digest [DigestLanes]uint16

// Hash computes the reccak digest of message. It is total: every input,
// including the empty one, yields a digest.
//
// The message is padded, then absorbed one block at a time into an all-zero
// state, permuting after each block. Row 0 of the final state gives lanes 0-4
// of the digest; one more permutation gives lanes 5-7.
func Hash(message []byte) Digest {
	padded := ApplyPadding(message)

	var state keccakf400.State
	var scratch keccakf400.Scratch
	for block := padded; len(block) > 0; block = block[BlockSize:] {
		for i := 0; i < 5; i++ {
			state[0][i] ^= binary.BigEndian.Uint16(block[2*i:])
			state[1][i] ^= binary.BigEndian.Uint16(block[10+2*i:])
		}
		scratch.Permute(&state)
	}

	var digest Digest
	copy(digest[0:5], state[0][0:5])
	scratch.Permute(&state)
	copy(digest[5:8], state[0][0:3])

	return digest
}
