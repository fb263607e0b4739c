// Package keccakf400 implements the reduced Keccak-style permutation used by reccak.
//
// # The permutation state
//
// The state is a 5x5 matrix of 16-bit lanes (400 bits), indexed [row][col]. One
// round applies five steps in a fixed order:
//
//	theta: XOR every lane of row i with a mask built from the parities of rows i-1 and i+1
//	rho:   rotate lane (i, j) left by 7*i+j bits (mod the 16-bit lane width)
//	pi:    move lane (i, j) to ((3*i+2*j) mod 5, i)
//	chi:   mix each lane with the two lanes below it in the same column
//	iota:  XOR a round constant into lane (0, 0)
//
// A full permutation is RoundCount rounds using RoundConstants in order. Calling
// the permutation again restarts from the first constant; no round offset is
// carried between invocations.
//
// The construction is a toy. It is not a vetted cryptographic primitive and no
// security claims are made for it.
package keccakf400
