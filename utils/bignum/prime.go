package bignum

import (
	"math/big"
)

// trialDivisionBound bounds the small-prime sieve used to cheaply
// discard candidates before Miller-Rabin.
const trialDivisionBound = 2048

var smallPrimes = sieve(trialDivisionBound)

func sieve(n int) (primes []uint64) {
	composite := make([]bool, n)
	for i := 2; i < n; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, uint64(i))
		for j := i * i; j < n; j += i {
			composite[j] = true
		}
	}
	return
}

// HasSmallFactor returns true if p is divisible by a prime below 2048.
// Divisibility of p by itself does not count: small primes pass.
func HasSmallFactor(p *big.Int) bool {
	r := new(big.Int)
	for _, sp := range smallPrimes {
		d := new(big.Int).SetUint64(sp)
		if p.CmpAbs(d) == 0 {
			return false
		}
		if r.Mod(p, d).Sign() == 0 {
			return true
		}
	}
	return false
}

// IsProbablePrime reports whether p is a probable prime, combining
// trial division by all primes below 2048 with rounds of Miller-Rabin.
func IsProbablePrime(p *big.Int, rounds int) bool {
	if p.Sign() <= 0 {
		return false
	}
	if HasSmallFactor(p) {
		return false
	}
	return p.ProbablyPrime(rounds)
}
