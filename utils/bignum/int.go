package bignum

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// NewInt allocates a new *big.Int.
// Accepted types are: string, uint, uint64, int64, int, *big.Float or *big.Int.
func NewInt(x interface{}) (y *big.Int) {

	y = new(big.Int)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case string:
		y.SetString(x, 0)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case int64:
		y.SetInt64(x)
	case int:
		y.SetInt64(int64(x))
	case *big.Float:
		x.Int(y)
	case *big.Int:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot NewInt: accepted types are string, uint, uint64, int, int64, *big.Float, *big.Int, but is %T", x))
	}

	return
}

// RandInt generates a random Int in [0, max-1].
func RandInt(reader io.Reader, max *big.Int) (n *big.Int) {
	var err error
	if n, err = rand.Int(reader, max); err != nil {
		panic(fmt.Errorf("rand.Int: %w", err))
	}
	return
}

// SMod returns the signed residue of a modulo m, with m > 0.
// For a >= 0 the result is a mod m in [0, m); for a < 0 it is
// -(|a| mod m) in (-m, 0]. The sign of a is preserved so that
// negative intermediate values reduce without wrapping.
func SMod(a, m *big.Int) (r *big.Int) {
	if m.Sign() <= 0 {
		panic(fmt.Errorf("SMod: modulus must be > 0"))
	}
	r = new(big.Int).Abs(a)
	r.Mod(r, m)
	if a.Sign() < 0 {
		r.Neg(r)
	}
	return
}

// HexString renders a as lowercase hexadecimal, without 0x prefix and
// without leading zeros. The zero value renders as "0". A negative a
// renders with a leading minus.
func HexString(a *big.Int) string {
	return a.Text(16)
}

// ParseHex parses a hexadecimal magnitude as produced by [HexString].
// Upper case digits, leading zeros and a leading minus (emitted by
// legacy producers for signed residues) are accepted.
func ParseHex(s string) (a *big.Int, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty hex magnitude")
	}
	a, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("malformed hex magnitude %q", s)
	}
	return
}
