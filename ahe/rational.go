package ahe

import (
	"fmt"
	"math"
	"math/big"

	"github.com/rmrschub/ahefutil/utils"
)

// Rational represents a signed rational as a sign and two non-negative
// big integer magnitudes. The denominator is never zero.
type Rational struct {
	Sign int // +1 or -1
	Num  *big.Int
	Den  *big.Int
}

// Float64 returns the receiver as the nearest float64.
func (r Rational) Float64() float64 {
	prec := uint(r.Num.BitLen() + r.Den.BitLen())
	if prec < 64 {
		prec = 64
	}
	a := new(big.Float).SetPrec(prec).SetInt(r.Num)
	b := new(big.Float).SetPrec(prec).SetInt(r.Den)
	f, _ := a.Quo(a, b).Float64()
	if r.Sign < 0 {
		f = -f
	}
	return f
}

// maxConvergents caps the continued-fraction iteration.
const maxConvergents = 64

// ApproximateFloat64 approximates v by a rational whose denominator
// does not exceed bound, using continued-fraction convergents. The sign is
// recorded separately and the returned magnitudes are non-negative.
//
// When the denominator cap truncates the last partial quotient, the
// capped convergent is kept only if the capped quotient is at least
// half the true one (keeping it then still improves the approximation);
// otherwise the previous convergent is the result.
func ApproximateFloat64(v float64, bound *big.Int) (r Rational, err error) {

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Rational{}, fmt.Errorf("cannot approximate %v as a rational", v)
	}

	// Signbit rather than a comparison, so that -0.0 keeps its sign.
	r.Sign = 1
	if math.Signbit(v) {
		r.Sign = -1
	}

	f := utils.Abs(v)

	if f == math.Floor(f) {
		r.Num, _ = new(big.Float).SetFloat64(f).Int(nil)
		r.Den = big.NewInt(1)
		return
	}

	// Scale f by powers of two until it is an integer d, so that
	// |v| = d/n exactly. f < 2^53 here since larger doubles have no
	// fractional part, so d fits a uint64.
	n := big.NewInt(1)
	for f != math.Floor(f) {
		n.Lsh(n, 1)
		f *= 2
	}
	d := new(big.Int).SetUint64(uint64(f))

	h0, h1 := big.NewInt(0), big.NewInt(1)
	k0, k1 := big.NewInt(1), big.NewInt(0)

	a := new(big.Int)
	x := new(big.Int)
	t := new(big.Int)

	for i := 0; i < maxConvergents; i++ {

		if n.Sign() != 0 {
			a.Quo(d, n)
		} else {
			a.SetInt64(0)
		}

		if i != 0 && a.Sign() == 0 {
			break
		}

		x.Set(d)
		d.Set(n)
		n.Mod(x, n)

		x.Set(a)

		last := false
		if t.Mul(k1, a).Add(t, k0).Cmp(bound) >= 0 {
			x.Sub(bound, k0).Quo(x, k1)
			if t.Lsh(x, 1).Cmp(a) >= 0 || k1.Cmp(bound) >= 0 {
				last = true
			} else {
				break
			}
		}

		h2 := new(big.Int).Mul(x, h1)
		h2.Add(h2, h0)
		h0, h1 = h1, h2

		k2 := new(big.Int).Mul(x, k1)
		k2.Add(k2, k0)
		k0, k1 = k1, k2

		if last {
			break
		}
	}

	r.Num = h1
	r.Den = k1
	return
}
