package ahe

import (
	"fmt"
	"math/big"
)

// SecretKey is the secret prime pair (p, q). Both primes are > 1.
type SecretKey struct {
	P *big.Int
	Q *big.Int
}

// NewSecretKey instantiates a [SecretKey] from two primes. The values
// are copied. Method panics if either value is < 2; primality is the
// caller's responsibility.
func NewSecretKey(p, q *big.Int) *SecretKey {
	if p == nil || q == nil || p.Cmp(two) < 0 || q.Cmp(two) < 0 {
		panic(fmt.Errorf("invalid secret key: p and q must be > 1"))
	}
	return &SecretKey{
		P: new(big.Int).Set(p),
		Q: new(big.Int).Set(q),
	}
}

// Equal performs a deep equal.
func (sk SecretKey) Equal(other *SecretKey) bool {
	return other != nil && sk.P.Cmp(other.P) == 0 && sk.Q.Cmp(other.Q) == 0
}

// CopyNew returns a deep copy of the receiver.
func (sk SecretKey) CopyNew() *SecretKey {
	return &SecretKey{P: new(big.Int).Set(sk.P), Q: new(big.Int).Set(sk.Q)}
}

// PublicKey is the modulus N = p*q. N is > 1.
type PublicKey struct {
	N *big.Int
}

// NewPublicKey instantiates a [PublicKey] from a modulus. The value is
// copied. Method panics if the modulus is < 2.
func NewPublicKey(n *big.Int) *PublicKey {
	if n == nil || n.Cmp(two) < 0 {
		panic(fmt.Errorf("invalid public key: N must be > 1"))
	}
	return &PublicKey{N: new(big.Int).Set(n)}
}

// Equal performs a deep equal.
func (pk PublicKey) Equal(other *PublicKey) bool {
	return other != nil && pk.N.Cmp(other.N) == 0
}

// CopyNew returns a deep copy of the receiver.
func (pk PublicKey) CopyNew() *PublicKey {
	return &PublicKey{N: new(big.Int).Set(pk.N)}
}

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)
