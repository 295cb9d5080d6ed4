package ahe

import (
	"fmt"
	"math/big"
)

// Encryptor is a structure used to encrypt float64 plaintexts under a
// [SecretKey]. It stores the secret key.
type Encryptor struct {
	params Parameters
	sk     *SecretKey
}

// NewEncryptor instantiates a new [Encryptor] from the given
// parameters and secret key. Method panics if sk is nil.
func NewEncryptor(params ParameterProvider, sk *SecretKey) *Encryptor {
	if sk == nil {
		panic(fmt.Errorf("encryption key is nil"))
	}
	return &Encryptor{
		params: *params.GetParameters(),
		sk:     sk,
	}
}

// EncryptNew encrypts v and returns the result in a new [Ciphertext].
//
// The plaintext is approximated by a rational n/d with d not exceeding
// the parameters' bound, and both magnitudes are raised to the power
// e = p modulo N = p*q. The exponent is e = rx*(p-1)+1 with rx fixed
// to 1, which the envelope format of existing producers depends on.
func (enc Encryptor) EncryptNew(v float64) (ct *Ciphertext, err error) {

	r, err := ApproximateFloat64(v, enc.params.Bound())
	if err != nil {
		return nil, err
	}

	N := new(big.Int).Mul(enc.sk.P, enc.sk.Q)
	e := enc.sk.P

	return &Ciphertext{
		Sign:        r.Sign,
		Numerator:   new(big.Int).Exp(r.Num, e, N),
		Denominator: new(big.Int).Exp(r.Den, e, N),
	}, nil
}
