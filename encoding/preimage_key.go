package encoding

import (
	"bytes"
	"io"

	"github.com/deso-protocol/reccak/reccak"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// AlphabetIdSize is the number of SHA3-256 bytes kept to identify an alphabet.
const AlphabetIdSize = 8

type AlphabetId [AlphabetIdSize]byte

// NewAlphabetId fingerprints an alphabet. Symbol order matters since it
// decides the enumeration order.
func NewAlphabetId(alphabet []byte) AlphabetId {
	sum := sha3.Sum256(alphabet)
	var id AlphabetId
	copy(id[:], sum[:AlphabetIdSize])
	return id
}

// PreimageKey identifies one stored search result:
//
//	<digest [16]byte> <candidate size uvarint> <alphabet id [8]byte>
//
// The digest comes first so that a prefix scan on a digest finds its
// preimages for every size and alphabet.
type PreimageKey struct {
	Digest        reccak.Digest
	CandidateSize uint64
	AlphabetId    AlphabetId
}

func (key *PreimageKey) ToBytes() []byte {
	var data []byte
	data = append(data, key.Digest.ToBytes()...)
	data = append(data, UintToBuf(key.CandidateSize)...)
	data = append(data, key.AlphabetId[:]...)
	return data
}

func (key *PreimageKey) FromBytes(data []byte) error {
	rr := bytes.NewReader(data)

	digestBytes := make([]byte, reccak.DigestSizeBytes)
	if _, err := io.ReadFull(rr, digestBytes); err != nil {
		return errors.Wrapf(err, "PreimageKey.FromBytes: Problem reading digest")
	}
	digest, err := reccak.DigestFromBytes(digestBytes)
	if err != nil {
		return errors.Wrapf(err, "PreimageKey.FromBytes:")
	}

	candidateSize, err := ReadUvarint(rr)
	if err != nil {
		return errors.Wrapf(err, "PreimageKey.FromBytes: Problem reading candidate size")
	}

	var alphabetId AlphabetId
	if _, err = io.ReadFull(rr, alphabetId[:]); err != nil {
		return errors.Wrapf(err, "PreimageKey.FromBytes: Problem reading alphabet id")
	}
	if rr.Len() != 0 {
		return errors.Errorf("PreimageKey.FromBytes: %d trailing bytes", rr.Len())
	}

	key.Digest = digest
	key.CandidateSize = candidateSize
	key.AlphabetId = alphabetId
	return nil
}
