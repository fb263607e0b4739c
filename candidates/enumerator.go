// Package candidates enumerates every fixed-length string over an alphabet,
// i.e. the Cartesian power alphabet^size, lazily and in a deterministic order.
//
// Candidates are produced in ascending mixed-radix order with position 0 as the
// least significant digit. For the alphabet "ab" and size 2 that is
// aa, ba, ab, bb.
package candidates

import (
	"math/bits"

	"github.com/pkg/errors"
)

var (
	ErrEmptyAlphabet       = errors.New("alphabet must not be empty")
	ErrInvalidSize         = errors.New("candidate size must be positive")
	ErrSearchSpaceTooLarge = errors.New("search space does not fit in a uint64")
)

// Iterator is implemented by Enumerator and Range. A fresh Iterator points
// before its first candidate; Next moves to the next one and reports whether
// it exists.
//
//	for it.Next() {
//		candidate := it.Candidate()
//		...
//	}
type Iterator interface {
	Next() bool
	Candidate() []byte
}

// SpaceSize returns alphabetLen^size, the number of candidates an Enumerator
// over such an alphabet produces.
func SpaceSize(alphabetLen int, size int) (uint64, error) {
	if alphabetLen <= 0 {
		return 0, ErrEmptyAlphabet
	}
	if size <= 0 {
		return 0, ErrInvalidSize
	}
	total := uint64(1)
	for ii := 0; ii < size; ii++ {
		hi, lo := bits.Mul64(total, uint64(alphabetLen))
		if hi != 0 {
			return 0, errors.Wrapf(ErrSearchSpaceTooLarge, "SpaceSize: %d^%d", alphabetLen, size)
		}
		total = lo
	}
	return total, nil
}

// Enumerator is an odometer over alphabet indices. Its cursor holds the
// indices of the last produced candidate. Enumerators are not safe for
// concurrent use; Fork one per goroutine instead.
type Enumerator struct {
	alphabet []byte
	cursor   []int
	total    uint64
	// position counts the candidates produced so far.
	position uint64

	started   bool
	exhausted bool
}

// NewEnumerator validates its arguments up front so that a bad alphabet or
// size never produces output. Duplicate symbols are kept as-is.
func NewEnumerator(alphabet []byte, size int) (*Enumerator, error) {
	total, err := SpaceSize(len(alphabet), size)
	if err != nil {
		return nil, errors.Wrapf(err, "NewEnumerator:")
	}
	return &Enumerator{
		alphabet: append([]byte(nil), alphabet...),
		cursor:   make([]int, size),
		total:    total,
	}, nil
}

// Total is the number of candidates the enumerator yields from the start.
func (enumerator *Enumerator) Total() uint64 {
	return enumerator.total
}

// Size is the length of every candidate.
func (enumerator *Enumerator) Size() int {
	return len(enumerator.cursor)
}

// Next advances the cursor. The first call lands on the all-zero indices
// without touching the odometer.
func (enumerator *Enumerator) Next() bool {
	if enumerator.exhausted {
		return false
	}
	if !enumerator.started {
		enumerator.started = true
		enumerator.position = 1
		return true
	}

	numSymbols := len(enumerator.alphabet)
	for position, index := range enumerator.cursor {
		if index+1 < numSymbols {
			for ii := 0; ii < position; ii++ {
				enumerator.cursor[ii] = 0
			}
			enumerator.cursor[position]++
			enumerator.position++
			return true
		}
	}
	enumerator.exhausted = true
	return false
}

// Candidate materializes the current cursor. The returned slice belongs to
// the caller. Calling Candidate before the first Next or after exhaustion
// returns nil.
func (enumerator *Enumerator) Candidate() []byte {
	if !enumerator.started || enumerator.exhausted {
		return nil
	}
	candidate := make([]byte, len(enumerator.cursor))
	for ii, index := range enumerator.cursor {
		candidate[ii] = enumerator.alphabet[index]
	}
	return candidate
}

// Skip has the effect of calling Next n times and returns how many of those
// calls would have succeeded. It sets the cursor directly, in O(size).
func (enumerator *Enumerator) Skip(n uint64) uint64 {
	if n == 0 || enumerator.exhausted {
		return 0
	}
	remaining := enumerator.total - enumerator.position
	if n > remaining {
		enumerator.position = enumerator.total
		enumerator.started = true
		enumerator.exhausted = true
		return remaining
	}

	enumerator.position += n
	enumerator.started = true
	// The cursor holds the digits of position-1, least significant first.
	numSymbols := uint64(len(enumerator.alphabet))
	value := enumerator.position - 1
	for ii := range enumerator.cursor {
		enumerator.cursor[ii] = int(value % numSymbols)
		value /= numSymbols
	}
	return n
}

// Fork returns an independent enumerator at the same position. The alphabet
// is immutable and shared; the cursor is copied.
func (enumerator *Enumerator) Fork() *Enumerator {
	fork := *enumerator
	fork.cursor = append([]int(nil), enumerator.cursor...)
	return &fork
}
