package ahe

import (
	"math/big"
)

// Ciphertext is a signed modular rational (s, n, d). The magnitudes
// are residues modulo N in practice, but representations need not be
// normalized. The sign is carried outside the magnitudes so that the
// modular exponentiation of [Encryptor] only ever sees non-negative
// values.
type Ciphertext struct {
	Sign        int // +1 or -1
	Numerator   *big.Int
	Denominator *big.Int
}

// NewCiphertext instantiates a [Ciphertext] from a sign and two
// magnitudes. Any non-negative sign is normalized to +1. The values
// are copied.
func NewCiphertext(sign int, num, den *big.Int) (ct *Ciphertext) {
	if sign >= 0 {
		sign = 1
	} else {
		sign = -1
	}
	return &Ciphertext{
		Sign:        sign,
		Numerator:   new(big.Int).Set(num),
		Denominator: new(big.Int).Set(den),
	}
}

// CopyNew returns a deep copy of the receiver.
func (ct Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{
		Sign:        ct.Sign,
		Numerator:   new(big.Int).Set(ct.Numerator),
		Denominator: new(big.Int).Set(ct.Denominator),
	}
}

// Equal performs a deep equal.
func (ct Ciphertext) Equal(other *Ciphertext) bool {
	return other != nil &&
		ct.Sign == other.Sign &&
		ct.Numerator.Cmp(other.Numerator) == 0 &&
		ct.Denominator.Cmp(other.Denominator) == 0
}

// signedNumerator returns s*n as a signed big integer, for use by the
// signed-domain addition and subtraction of [Evaluator].
func (ct Ciphertext) signedNumerator() *big.Int {
	n := new(big.Int).Set(ct.Numerator)
	if ct.Sign < 0 {
		n.Neg(n)
	}
	return n
}
