package ahe

import (
	"fmt"
	"math/big"

	"github.com/rmrschub/ahefutil/utils/bignum"
	"github.com/rmrschub/ahefutil/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to
// sample new secret prime pairs and derive public keys from them.
type KeyGenerator struct {
	params Parameters
	source *sampling.Source
}

// NewKeyGenerator creates a new [KeyGenerator] from the given
// parameters and randomness source. A nil source is substituted with a
// fresh crypto/rand-seeded one; a keyed source gives reproducible keys.
func NewKeyGenerator(params ParameterProvider, source *sampling.Source) *KeyGenerator {
	if source == nil {
		source = sampling.NewSource(sampling.NewSeed())
	}
	return &KeyGenerator{
		params: *params.GetParameters(),
		source: source,
	}
}

// GenSecretKeyNew samples a new [SecretKey] of two independent probable
// primes of the configured bit-size. Identical primes are rejected and
// resampled. Returns an error wrapping [ErrKeyGen] if the prime search
// exhausts its retry budget.
func (kgen *KeyGenerator) GenSecretKeyNew() (sk *SecretKey, err error) {

	p, err := kgen.genPrime()
	if err != nil {
		return nil, err
	}

	q, err := kgen.genPrime()
	if err != nil {
		return nil, err
	}

	for p.Cmp(q) == 0 {
		if q, err = kgen.genPrime(); err != nil {
			return nil, err
		}
	}

	return &SecretKey{P: p, Q: q}, nil
}

// GenPublicKeyNew derives the [PublicKey] N = p*q from the provided
// [SecretKey].
func (kgen *KeyGenerator) GenPublicKeyNew(sk *SecretKey) (pk *PublicKey) {
	return &PublicKey{N: new(big.Int).Mul(sk.P, sk.Q)}
}

// GenKeyPairNew samples a new [SecretKey] and derives its [PublicKey].
func (kgen *KeyGenerator) GenKeyPairNew() (sk *SecretKey, pk *PublicKey, err error) {
	if sk, err = kgen.GenSecretKeyNew(); err != nil {
		return nil, nil, err
	}
	return sk, kgen.GenPublicKeyNew(sk), nil
}

func (kgen *KeyGenerator) genPrime() (*big.Int, error) {
	if kgen.params.SpecialFactor() {
		return kgen.genPrimeWithFactor(kgen.params.Bits())
	}
	return kgen.genPrimeBits(kgen.params.Bits())
}

// genPrimeBits samples a probable prime of exactly bits bits: top and
// bottom bits forced, trial division below 2048, then Miller-Rabin.
func (kgen *KeyGenerator) genPrimeBits(bits int) (*big.Int, error) {

	buf := make([]byte, (bits+7)>>3)

	for attempts := kgen.attemptBudget(bits); attempts > 0; attempts-- {

		kgen.source.Read(buf)

		candidate := new(big.Int).SetBytes(buf)

		// Clamp to bits bits with the top and bottom bits set, so the
		// candidate is odd and of full size.
		for b := candidate.BitLen(); b > bits; b-- {
			candidate.SetBit(candidate, b-1, 0)
		}
		candidate.SetBit(candidate, bits-1, 1)
		candidate.SetBit(candidate, 0, 1)

		if bignum.IsProbablePrime(candidate, kgen.params.MillerRabinRounds()) {
			return candidate, nil
		}
	}

	return nil, fmt.Errorf("%w: no %d-bit prime found within the retry budget", ErrKeyGen, bits)
}

// genPrimeWithFactor samples a probable prime p = 2*f*r + 1 where f is
// itself a prime of about half the requested size, so that p-1 is
// guaranteed a large prime factor.
func (kgen *KeyGenerator) genPrimeWithFactor(bits int) (*big.Int, error) {

	f, err := kgen.genPrimeBits((bits + 1) >> 1)
	if err != nil {
		return nil, err
	}

	rBits := bits - f.BitLen() - 1
	if rBits < 1 {
		rBits = 1
	}

	// Cofactors are sampled in [2^(rBits-1), 2^rBits) so that p has
	// full size.
	half := new(big.Int).Lsh(one, uint(rBits-1))

	p := new(big.Int)

	for attempts := kgen.attemptBudget(bits); attempts > 0; attempts-- {

		r := bignum.RandInt(kgen.source, half)
		r.Add(r, half)

		p.Mul(f, r)
		p.Lsh(p, 1)
		p.Add(p, one)

		if p.BitLen() != bits {
			continue
		}

		if bignum.IsProbablePrime(p, kgen.params.MillerRabinRounds()) {
			return p, nil
		}
	}

	return nil, fmt.Errorf("%w: no %d-bit prime with special factor found within the retry budget", ErrKeyGen, bits)
}

// attemptBudget scales the retry budget with the candidate size, since
// the prime density thins out as log(2^bits).
func (kgen *KeyGenerator) attemptBudget(bits int) int {
	return 64 * bits
}
