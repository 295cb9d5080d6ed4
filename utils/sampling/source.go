// Package sampling implements deterministic random byte sources
// expanded from a 32-byte seed with the BLAKE3 XOF.
package sampling

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"
)

// Source is a cryptographically secure pseudo random byte stream keyed
// by a 32-byte seed. Two Sources built from the same seed produce the
// same stream. The zero seed is a valid key; use [NewSeed] for a fresh
// unpredictable one.
type Source struct {
	seed [32]byte
	xof  *blake3.Digest
}

// NewSeed samples a fresh 32-byte seed from crypto/rand.
func NewSeed() (seed [32]byte) {
	if _, err := rand.Read(seed[:]); err != nil {
		panic(fmt.Errorf("crypto/rand: %w", err))
	}
	return
}

// NewSource instantiates a new Source from a seed.
func NewSource(seed [32]byte) *Source {
	h, err := blake3.NewKeyed(seed[:])
	if err != nil {
		// Sanity check, the key is always 32 bytes.
		panic(err)
	}
	return &Source{seed: seed, xof: h.Digest()}
}

// NewSource derives an independent child Source from the receiver's
// stream. The child can be used concurrently with the receiver.
func (s *Source) NewSource() *Source {
	var seed [32]byte
	s.Read(seed[:])
	return NewSource(seed)
}

// Seed returns the seed of the receiver.
func (s *Source) Seed() [32]byte {
	return s.seed
}

// Reset rewinds the receiver to the beginning of its stream.
func (s *Source) Reset() {
	h, err := blake3.NewKeyed(s.seed[:])
	if err != nil {
		panic(err)
	}
	s.xof = h.Digest()
}

// Read fills p with bytes from the stream. It implements io.Reader and
// never fails.
func (s *Source) Read(p []byte) (n int, err error) {
	if n, err = s.xof.Read(p); err != nil {
		// Sanity check, the XOF stream is endless.
		panic(err)
	}
	return
}

// Uint64 returns the next 8 bytes of the stream as an unsigned integer.
func (s *Source) Uint64() uint64 {
	var buf [8]byte
	s.Read(buf[:])
	return binary.LittleEndian.Uint64(buf[:])
}
