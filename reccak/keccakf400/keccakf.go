package keccakf400

import "math/bits"

// RoundCount is the number of rounds in one full permutation.
const RoundCount = 10

// RoundConstants are XORed into lane (0, 0) by iota, one per round.
var RoundConstants = [RoundCount]uint16{
	0x3EC2, 0x738D, 0xB119, 0xC5E7, 0x86C6,
	0xDC1B, 0x57D6, 0xDA3A, 0x7710, 0x9200,
}

// State is the 5x5 lane matrix, row-major.
type State [5][5]uint16

// Scratch holds the buffers a permutation needs besides the state itself. A
// Scratch can be reused across many calls to Permute, which is what the hash
// does while absorbing a long message. It must not be shared between
// goroutines.
type Scratch struct {
	b State
	c [5]uint16
	d [5]uint16
}

// Permute applies all RoundCount rounds to a, reusing the scratch buffers.
func (s *Scratch) Permute(a *State) {
	for round := 0; round < RoundCount; round++ {
		s.round(round, a)
	}
}

// Permute applies a full permutation to a with a throwaway scratch.
func Permute(a *State) {
	var s Scratch
	s.Permute(a)
}

func (s *Scratch) round(round int, a *State) {
	theta(a, &s.c, &s.d)
	rho(a)
	pi(a, &s.b)
	chi(a, &s.b)
	iotaStep(round, a)
}

func theta(a *State, c, d *[5]uint16) {
	for i := 0; i < 5; i++ {
		c[i] = a[i][0] ^ a[i][1] ^ a[i][2] ^ a[i][3] ^ a[i][4]
	}
	for i := 0; i < 5; i++ {
		d[i] = c[(i+4)%5] ^ bits.RotateLeft16(c[(i+1)%5], 1)
	}
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			a[i][j] ^= d[i]
		}
	}
}

// rho rotates by 7*i+j. RotateLeft16 reduces the amount mod 16.
func rho(a *State) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			a[i][j] = bits.RotateLeft16(a[i][j], 7*i+j)
		}
	}
}

// pi writes into b; a is only read.
func pi(a *State, b *State) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			b[(3*i+2*j)%5][i] = a[i][j]
		}
	}
}

func chi(a *State, b *State) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			a[i][j] = b[i][j] ^ (^b[(i+1)%5][j] & b[(i+2)%5][j])
		}
	}
}

func iotaStep(round int, a *State) {
	a[0][0] ^= RoundConstants[round]
}
