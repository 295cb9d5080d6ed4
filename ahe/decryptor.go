package ahe

import (
	"fmt"
	"math/big"

	"github.com/rmrschub/ahefutil/utils/bignum"
)

// decimalDigits is the number of significant digits of the decimal
// rendering of decrypted plaintexts.
const decimalDigits = 30

// Decryptor is a structure used to decrypt [Ciphertext]. It stores the
// secret key.
type Decryptor struct {
	sk *SecretKey
}

// NewDecryptor instantiates a new [Decryptor] from the given secret
// key. Method panics if sk is nil.
func NewDecryptor(sk *SecretKey) *Decryptor {
	if sk == nil {
		panic(fmt.Errorf("decryption key is nil"))
	}
	return &Decryptor{sk: sk}
}

// DecryptNew decrypts ct and returns the plaintext in a new [Rational].
// Returns an error wrapping [ErrArithmetic] if the denominator residue
// vanishes modulo p.
func (d Decryptor) DecryptNew(ct *Ciphertext) (r Rational, err error) {

	if d.sk.P.Sign() == 0 {
		return Rational{}, fmt.Errorf("%w: secret prime p is zero", ErrArithmetic)
	}

	num := bignum.SMod(ct.Numerator, d.sk.P)
	den := bignum.SMod(ct.Denominator, d.sk.P)

	if den.Sign() == 0 {
		return Rational{}, fmt.Errorf("%w: denominator residue is zero modulo p", ErrArithmetic)
	}

	sign := ct.Sign
	if num.Sign()*den.Sign() < 0 {
		sign = -sign
	}

	return Rational{
		Sign: sign,
		Num:  num.Abs(num),
		Den:  den.Abs(den),
	}, nil
}

// DecryptDecimalNew decrypts ct and renders the plaintext as an exact
// decimal string with 30 significant digits. The minus sign is emitted
// only for a negative result with non-zero magnitude.
func (d Decryptor) DecryptDecimalNew(ct *Ciphertext) (s string, err error) {

	r, err := d.DecryptNew(ct)
	if err != nil {
		return "", err
	}

	num := r.Num
	if r.Sign < 0 {
		num = new(big.Int).Neg(num)
	}

	if s, err = bignum.DecimalString(num, r.Den, decimalDigits); err != nil {
		return "", fmt.Errorf("%w: %s", ErrArithmetic, err)
	}

	return s, nil
}
