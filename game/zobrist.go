package game

import (
	"fmt"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Zobrist hashes board contents by XOR-ing one random key per occupied
// (cell, colour) pair. https://en.wikipedia.org/wiki/Zobrist_hashing
//
// A table is immutable once built, so it may be shared freely between
// goroutines, caches and evaluators.
type Zobrist struct {
	size int
	keys [][2]uint64 // [cell][colour-1], 63-bit, never zero
}

// NewZobrist builds a deterministic table for a size×size board.
func NewZobrist(size int, seed uint64) *Zobrist {
	rng := rand.New(rand.NewSource(seed))
	return newZobrist(size, func() uint64 { return rng.Uint64() >> 1 })
}

// NewRandomZobrist builds a table from a cryptographically seeded stream;
// hashes differ between processes.
func NewRandomZobrist(size int) *Zobrist {
	return newZobrist(size, func() uint64 { return frand.Uint64n(1 << 63) })
}

func newZobrist(size int, next func() uint64) *Zobrist {
	z := &Zobrist{size: size, keys: make([][2]uint64, size*size)}
	for i := range z.keys {
		for k := range z.keys[i] {
			// Avoid zero (XOR with it does nothing)
			v := next()
			for v == 0 {
				v = next()
			}
			z.keys[i][k] = v
		}
	}
	return z
}

func (z *Zobrist) Size() int { return z.size }

// Hash computes the key of b from scratch.
func (z *Zobrist) Hash(b *Board) uint64 {
	if b.size != z.size {
		panic(fmt.Sprintf("zobrist table for size %d cannot hash a board of size %d", z.size, b.size))
	}
	var h uint64
	for i, c := range b.cells {
		if c != Empty {
			h ^= z.keys[i][c-1]
		}
	}
	return h
}

// Toggle adds or removes a single disc from hash h.
// Usage: h = z.Toggle(h, r, c, old) then h = z.Toggle(h, r, c, new).
func (z *Zobrist) Toggle(h uint64, r, c int, color Color) uint64 {
	if color == Empty {
		return h
	}
	return h ^ z.keys[r*z.size+c][color-1]
}
