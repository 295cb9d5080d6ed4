package bignum

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSMod(t *testing.T) {

	for _, tc := range []struct {
		a, m, want int64
	}{
		{-7, 5, -2},
		{7, 5, 2},
		{0, 5, 0},
		{-10, 5, 0},
		{10, 5, 0},
		{-1, 7, -1},
		{13, 7, 6},
		{-13, 7, -6},
	} {
		got := SMod(big.NewInt(tc.a), big.NewInt(tc.m))
		require.Equal(t, tc.want, got.Int64(), "smod(%d, %d)", tc.a, tc.m)
	}

	t.Run("Law", func(t *testing.T) {

		m := big.NewInt(97)

		for a := int64(-300); a <= 300; a++ {

			A := big.NewInt(a)
			r := SMod(A, m)

			// r == a (mod m)
			diff := new(big.Int).Sub(A, r)
			require.Zero(t, diff.Mod(diff, m).Sign())

			// sign(r) in {sign(a), 0}
			if r.Sign() != 0 {
				require.Equal(t, A.Sign(), r.Sign())
			}

			// |r| < m
			require.True(t, r.CmpAbs(m) < 0)
		}
	})

	t.Run("NonPositiveModulus", func(t *testing.T) {
		require.Panics(t, func() { SMod(big.NewInt(1), big.NewInt(0)) })
		require.Panics(t, func() { SMod(big.NewInt(1), big.NewInt(-5)) })
	})
}

func TestHex(t *testing.T) {

	t.Run("RoundTrip", func(t *testing.T) {
		for _, s := range []string{"0", "1", "f", "10", "abcdef0123456789", "ffffffffffffffffffffffffffffffff"} {
			a, err := ParseHex(s)
			require.NoError(t, err)
			require.Equal(t, s, HexString(a))
		}
	})

	t.Run("Zero", func(t *testing.T) {
		require.Equal(t, "0", HexString(new(big.Int)))
	})

	t.Run("LeadingZeros", func(t *testing.T) {
		a, err := ParseHex("00ff")
		require.NoError(t, err)
		require.Equal(t, int64(255), a.Int64())
	})

	t.Run("UpperCase", func(t *testing.T) {
		a, err := ParseHex("1A3F")
		require.NoError(t, err)
		require.Equal(t, "1a3f", HexString(a))
	})

	t.Run("Negative", func(t *testing.T) {
		a, err := ParseHex("-1a")
		require.NoError(t, err)
		require.Equal(t, int64(-26), a.Int64())
		require.Equal(t, "-1a", HexString(a))
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, s := range []string{"", "0x1a", "xyz", "12 34", "--1"} {
			_, err := ParseHex(s)
			require.Error(t, err, "ParseHex(%q)", s)
		}
	})
}

func TestDecimalString(t *testing.T) {

	t.Run("Exact", func(t *testing.T) {
		s, err := DecimalString(big.NewInt(5000), big.NewInt(1), 30)
		require.NoError(t, err)
		require.Equal(t, "5000", s)

		s, err = DecimalString(big.NewInt(19), big.NewInt(4), 30)
		require.NoError(t, err)
		require.Equal(t, "4.75", s)
	})

	t.Run("Negative", func(t *testing.T) {
		s, err := DecimalString(big.NewInt(-3), big.NewInt(2), 30)
		require.NoError(t, err)
		require.Equal(t, "-1.5", s)
	})

	t.Run("NonTerminating", func(t *testing.T) {

		// Small operands must not shrink the mantissa below what the
		// requested digits need: every emitted digit is a true digit
		// of the rational.
		s, err := DecimalString(big.NewInt(1), big.NewInt(3), 30)
		require.NoError(t, err)
		require.Equal(t, "0.333333333333333333333333333333", s)

		s, err = DecimalString(big.NewInt(2), big.NewInt(3), 30)
		require.NoError(t, err)
		require.Equal(t, "0.666666666666666666666666666667", s)

		s, err = DecimalString(big.NewInt(3), big.NewInt(10), 30)
		require.NoError(t, err)
		require.Equal(t, "0.3", s)
	})

	t.Run("LargeOperands", func(t *testing.T) {
		num, ok := new(big.Int).SetString("123456789012345678901234567890123456789", 10)
		require.True(t, ok)
		s, err := DecimalString(num, big.NewInt(1000000000), 30)
		require.NoError(t, err)
		require.Equal(t, "123456789012345678901234567890", s)
	})

	t.Run("ZeroDenominator", func(t *testing.T) {
		_, err := DecimalString(big.NewInt(1), new(big.Int), 30)
		require.Error(t, err)
	})
}

func TestIsProbablePrime(t *testing.T) {

	for _, p := range []int64{2, 3, 5, 7919, 6133, 2047} {
		want := big.NewInt(p).ProbablyPrime(40)
		require.Equal(t, want, IsProbablePrime(big.NewInt(p), 40), "p=%d", p)
	}

	// 2047 = 23 * 89 is a strong pseudoprime to base 2 and must be
	// rejected by the trial division stage alone.
	require.True(t, HasSmallFactor(big.NewInt(2047)))
	require.False(t, IsProbablePrime(big.NewInt(2047), 40))

	require.False(t, IsProbablePrime(new(big.Int), 40))
	require.False(t, IsProbablePrime(big.NewInt(-7), 40))
	require.False(t, IsProbablePrime(big.NewInt(1), 40))

	// Small primes survive their own trial division.
	require.True(t, IsProbablePrime(big.NewInt(1999), 40))

	p, ok := new(big.Int).SetString("ffffffffffffffc5", 16)
	require.True(t, ok)
	require.True(t, IsProbablePrime(p, 40))
}
