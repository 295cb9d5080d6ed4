package ahe

import (
	"fmt"
	"math/big"

	"github.com/rmrschub/ahefutil/utils/bignum"
)

// Evaluator is a structure that holds the public key and executes the
// homomorphic operations on ciphertexts. Operands are never mutated;
// every operation returns a fresh [Ciphertext].
type Evaluator struct {
	pk *PublicKey
}

// NewEvaluator instantiates a new [Evaluator] from the given public
// key. Method panics if pk is nil.
func NewEvaluator(pk *PublicKey) *Evaluator {
	if pk == nil {
		panic(fmt.Errorf("evaluation key is nil"))
	}
	return &Evaluator{pk: pk}
}

// AddNew returns a ciphertext decrypting to the sum of the plaintexts
// of a and b when both operands have the same sign; see addsub for
// operands of opposite signs.
func (eval Evaluator) AddNew(a, b *Ciphertext) (c *Ciphertext) {
	return eval.addsub(a, b, false)
}

// SubNew returns a ciphertext decrypting to the difference of the
// plaintexts of a and b when the operands have opposite signs; see
// addsub for operands of the same sign.
func (eval Evaluator) SubNew(a, b *Ciphertext) (c *Ciphertext) {
	return eval.addsub(a, b, true)
}

// addsub computes the cross-multiplied sum or difference of the two
// modular fractions. The signed numerator (s_a*n_a)*d_b ± (s_b*n_b)*d_a
// is evaluated exactly in the signed domain; the result sign is the
// sign of that value (+1 for zero) and its magnitude is reduced with
// smod modulo N.
//
// When both cross terms carry the same sign (addition of same-sign
// operands, subtraction of opposite-sign operands) the result decrypts
// to the expected signed value. Otherwise the sign of the exact
// cross-sum follows the sizes of the residues, not of the plaintexts,
// and the result decrypts correctly only when the two agree, which
// depends on the key.
func (eval Evaluator) addsub(a, b *Ciphertext, sub bool) (c *Ciphertext) {

	t1 := new(big.Int).Mul(a.signedNumerator(), b.Denominator)
	t2 := new(big.Int).Mul(b.signedNumerator(), a.Denominator)

	if sub {
		t1.Sub(t1, t2)
	} else {
		t1.Add(t1, t2)
	}

	sign := 1
	if t1.Sign() < 0 {
		sign = -1
	}

	den := new(big.Int).Mul(a.Denominator, b.Denominator)

	return &Ciphertext{
		Sign:        sign,
		Numerator:   bignum.SMod(t1.Abs(t1), eval.pk.N),
		Denominator: bignum.SMod(den, eval.pk.N),
	}
}

// MulNew returns a ciphertext decrypting to the product of the
// plaintexts of a and b. The result sign is the product of the operand
// signs.
func (eval Evaluator) MulNew(a, b *Ciphertext) (c *Ciphertext) {

	num := new(big.Int).Mul(a.Numerator, b.Numerator)
	den := new(big.Int).Mul(a.Denominator, b.Denominator)

	return &Ciphertext{
		Sign:        a.Sign * b.Sign,
		Numerator:   bignum.SMod(num, eval.pk.N),
		Denominator: bignum.SMod(den, eval.pk.N),
	}
}
