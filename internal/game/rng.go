package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// NewRand returns a math/rand source seeded from crypto/rand. The engine
// takes the source as a dependency so tests can pass a fixed seed.
func NewRand() *rand.Rand {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Fallback - should never happen
		return rand.New(rand.NewSource(1))
	}
	return rand.New(rand.NewSource(int64(binary.LittleEndian.Uint64(b[:]))))
}
