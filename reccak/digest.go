package reccak

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// DigestSizeBytes is the size of a Digest once serialized.
const DigestSizeBytes = 2 * DigestLanes

var ErrInvalidDigest = errors.New("invalid digest")

// String renders the digest as 0x followed by each lane as four upper-case
// hex digits, e.g. 0xE2255BFBD3CF86E0DBE52AA96782EB8D.
func (digest Digest) String() string {
	var sb strings.Builder
	sb.Grow(2 + 4*DigestLanes)
	sb.WriteString("0x")
	for _, lane := range digest {
		fmt.Fprintf(&sb, "%04X", lane)
	}
	return sb.String()
}

// ToBytes serializes the lanes big-endian.
func (digest Digest) ToBytes() []byte {
	data := make([]byte, DigestSizeBytes)
	for ii, lane := range digest {
		binary.BigEndian.PutUint16(data[2*ii:], lane)
	}
	return data
}

// DigestFromBytes is the inverse of ToBytes.
func DigestFromBytes(data []byte) (Digest, error) {
	var digest Digest
	if len(data) != DigestSizeBytes {
		return digest, errors.Wrapf(ErrInvalidDigest, "DigestFromBytes: Got %d bytes, expected %d",
			len(data), DigestSizeBytes)
	}
	for ii := range digest {
		digest[ii] = binary.BigEndian.Uint16(data[2*ii:])
	}
	return digest, nil
}

// ParseDigest accepts the output of Digest.String, with or without the 0x
// prefix and in either case.
func ParseDigest(str string) (Digest, error) {
	str = strings.TrimSpace(str)
	str = strings.TrimPrefix(strings.TrimPrefix(str, "0x"), "0X")
	data, err := hex.DecodeString(str)
	if err != nil {
		return Digest{}, errors.Wrapf(ErrInvalidDigest, "ParseDigest: %v", err)
	}
	return DigestFromBytes(data)
}
