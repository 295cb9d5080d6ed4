package envelope

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/rmrschub/ahefutil/ahe"
)

var bigIntComparer = cmp.Comparer(func(x, y *big.Int) bool { return x.Cmp(y) == 0 })

func TestPrivateKeys(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "private_keys.json")

	sk := &ahe.SecretKey{P: big.NewInt(7919), Q: big.NewInt(6133)}

	require.NoError(t, WritePrivateKeys(path, sk))

	got, err := ReadPrivateKeys(path)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(sk, got, bigIntComparer))

	t.Run("Layout", func(t *testing.T) {

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		s := string(data)
		require.True(t, strings.HasPrefix(s, "{\n    \"created\": "))
		require.True(t, strings.HasSuffix(s, "\n"))
		require.Contains(t, s, "\"p\": \"1eef\"")
		require.Contains(t, s, "\"q\": \"17f5\"")
	})

	t.Run("InvalidKeys", func(t *testing.T) {

		path := filepath.Join(dir, "bad_keys.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"created": "", "p": "1", "q": "17f5"}`), 0644))

		_, err := ReadPrivateKeys(path)
		require.ErrorIs(t, err, ErrEnvelope)
	})

	t.Run("MissingKey", func(t *testing.T) {

		path := filepath.Join(dir, "missing_q.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"created": "", "p": "1eef"}`), 0644))

		_, err := ReadPrivateKeys(path)
		require.ErrorIs(t, err, ErrEnvelope)
	})

	t.Run("MalformedJSON", func(t *testing.T) {

		path := filepath.Join(dir, "malformed.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"p": `), 0644))

		_, err := ReadPrivateKeys(path)
		require.ErrorIs(t, err, ErrEnvelope)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := ReadPrivateKeys(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
	})
}

func TestPublicKey(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "public_key.json")

	pk := &ahe.PublicKey{N: new(big.Int).Mul(big.NewInt(7919), big.NewInt(6133))}

	require.NoError(t, WritePublicKey(path, pk))

	got, err := ReadPublicKey(path)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(pk, got, bigIntComparer))

	t.Run("LeadingZeros", func(t *testing.T) {

		path := filepath.Join(dir, "padded.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"N": "002e513bb", "created": ""}`), 0644))

		got, err := ReadPublicKey(path)
		require.NoError(t, err)
		require.Equal(t, pk.N, got.N)
	})

	t.Run("InvalidModulus", func(t *testing.T) {

		path := filepath.Join(dir, "bad_modulus.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"N": "0", "created": ""}`), 0644))

		_, err := ReadPublicKey(path)
		require.ErrorIs(t, err, ErrEnvelope)
	})
}

func TestCiphertext(t *testing.T) {

	dir := t.TempDir()

	t.Run("RoundTrip", func(t *testing.T) {

		for _, sign := range []int{1, -1} {

			path := filepath.Join(dir, "cipher.json")

			ct := &ahe.Ciphertext{Sign: sign, Numerator: big.NewInt(123456), Denominator: big.NewInt(789)}

			require.NoError(t, WriteCiphertext(path, ct))

			got, legacy, err := ReadCiphertext(path)
			require.NoError(t, err)
			require.False(t, legacy)
			require.Empty(t, cmp.Diff(ct, got, bigIntComparer))
		}
	})

	t.Run("LegacySign", func(t *testing.T) {

		for _, tc := range []struct {
			in   int
			want int
		}{
			{0, 1},
			{1, -1},
		} {
			path := filepath.Join(dir, "legacy.json")
			require.NoError(t, os.WriteFile(path, []byte(
				`{"created": "", "denominator": "315", "numerator": "1e240", "sign": `+map[int]string{0: "0", 1: "1"}[tc.in]+`}`), 0644))

			ct, legacy, err := ReadCiphertext(path)
			require.NoError(t, err)
			require.True(t, legacy)
			require.Equal(t, tc.want, ct.Sign)
		}
	})

	t.Run("NegativeMagnitude", func(t *testing.T) {

		// Legacy subtraction emitted signed residues as negative hex.
		path := filepath.Join(dir, "negative.json")
		require.NoError(t, os.WriteFile(path, []byte(
			`{"created": "", "denominator": "315", "numerator": "-1a", "sign": 0}`), 0644))

		ct, _, err := ReadCiphertext(path)
		require.NoError(t, err)
		require.Equal(t, int64(-26), ct.Numerator.Int64())
	})

	t.Run("InvalidSign", func(t *testing.T) {

		path := filepath.Join(dir, "badsign.json")
		require.NoError(t, os.WriteFile(path, []byte(
			`{"created": "", "denominator": "315", "numerator": "1e240", "sign": 2}`), 0644))

		_, _, err := ReadCiphertext(path)
		require.ErrorIs(t, err, ErrEnvelope)
	})

	t.Run("MalformedHex", func(t *testing.T) {

		path := filepath.Join(dir, "badhex.json")
		require.NoError(t, os.WriteFile(path, []byte(
			`{"created": "", "denominator": "xyz", "numerator": "1e240", "sign": 1}`), 0644))

		_, _, err := ReadCiphertext(path)
		require.ErrorIs(t, err, ErrEnvelope)
	})
}

func TestTransactionalWrite(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "does", "not", "exist.json")

	err := WritePublicKey(path, &ahe.PublicKey{N: big.NewInt(35)})
	require.Error(t, err)

	// The failed write leaves nothing behind, not even in the parent.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}
