package ahe

import (
	"fmt"
	"math/big"

	"github.com/rmrschub/ahefutil/utils/bignum"
)

// DefaultBits is the default bit-size of the secret primes.
const DefaultBits = 512

// DefaultBound is the default denominator bound of the rational
// approximation of plaintexts. It caps plaintext precision and,
// indirectly, the usable plaintext range before decryption wraps
// modulo p.
const DefaultBound = 100000000

// DefaultMillerRabinRounds is the default number of Miller-Rabin
// rounds applied to prime candidates during key generation.
const DefaultMillerRabinRounds = 40

// MinBits is the smallest accepted prime bit-size.
const MinBits = 16

// ParametersLiteral is a literal representation of the scheme
// parameters. It has public fields and is used to express unchecked
// user-defined parameters literally into Go programs. The
// [NewParametersFromLiteral] function is used to generate the actual
// checked parameters from the literal representation. Zero fields are
// substituted with the package defaults.
type ParametersLiteral struct {
	// Bits is the bit-size of each secret prime.
	Bits int `json:",omitempty"`
	// Bound is the denominator bound of the rational approximation.
	Bound uint64 `json:",omitempty"`
	// MillerRabin is the number of Miller-Rabin rounds for primality testing.
	MillerRabin int `json:",omitempty"`
	// SpecialFactor requests primes p such that p-1 has a large prime factor.
	SpecialFactor bool `json:",omitempty"`
}

// Parameters represents a checked, immutable set of scheme parameters.
// See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	bits          int
	bound         *big.Int
	millerRabin   int
	specialFactor bool
}

// NewParametersFromLiteral instantiates a set of [Parameters] from a
// [ParametersLiteral], substituting defaults for zero fields. It
// returns the empty Parameters{} and a non-nil error if the literal is
// invalid.
func NewParametersFromLiteral(p ParametersLiteral) (params Parameters, err error) {

	if p.Bits == 0 {
		p.Bits = DefaultBits
	}

	if p.Bound == 0 {
		p.Bound = DefaultBound
	}

	if p.MillerRabin == 0 {
		p.MillerRabin = DefaultMillerRabinRounds
	}

	if p.Bits < MinBits {
		return Parameters{}, fmt.Errorf("invalid ParametersLiteral: Bits=%d < %d", p.Bits, MinBits)
	}

	if p.Bound < 2 {
		return Parameters{}, fmt.Errorf("invalid ParametersLiteral: Bound=%d < 2", p.Bound)
	}

	if p.MillerRabin < 20 {
		return Parameters{}, fmt.Errorf("invalid ParametersLiteral: MillerRabin=%d < 20", p.MillerRabin)
	}

	return Parameters{
		bits:          p.Bits,
		bound:         bignum.NewInt(p.Bound),
		millerRabin:   p.MillerRabin,
		specialFactor: p.SpecialFactor,
	}, nil
}

// Bits returns the bit-size of the secret primes.
func (p Parameters) Bits() int {
	return p.bits
}

// Bound returns the denominator bound of the rational approximation.
func (p Parameters) Bound() *big.Int {
	return new(big.Int).Set(p.bound)
}

// MillerRabinRounds returns the number of Miller-Rabin rounds applied
// to prime candidates.
func (p Parameters) MillerRabinRounds() int {
	return p.millerRabin
}

// SpecialFactor reports whether generated primes p are required to
// have a large prime factor in p-1.
func (p Parameters) SpecialFactor() bool {
	return p.specialFactor
}

// GetParameters returns the receiver. It implements [ParameterProvider].
func (p Parameters) GetParameters() *Parameters {
	return &p
}

// ParameterProvider is an interface for types providing scheme parameters.
type ParameterProvider interface {
	GetParameters() *Parameters
}
