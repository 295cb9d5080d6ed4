package bignum

import (
	"fmt"
	"math/big"
)

// DecimalString renders the exact rational num/den as a decimal string
// rounded to digits significant digits, with trailing zeros dropped.
// The quotient is evaluated with a mantissa wide enough for the
// requested digits (4 bits per digit, about a fifth more than the
// log2(10) a digit costs), and never narrower than the exact
// bit-length of the operands.
func DecimalString(num, den *big.Int, digits int) (string, error) {

	if den.Sign() == 0 {
		return "", fmt.Errorf("DecimalString: division by zero")
	}

	prec := uint(digits) * 4
	if opBits := uint(num.BitLen() + den.BitLen()); opBits > prec {
		prec = opBits
	}

	a := new(big.Float).SetPrec(prec).SetInt(num)
	b := new(big.Float).SetPrec(prec).SetInt(den)

	return a.Quo(a, b).Text('g', digits), nil
}
