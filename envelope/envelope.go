// Package envelope implements the JSON on-disk format of the toolkit:
// private-keys, public-key and ciphertext files with lowercase hex
// magnitudes and a ctime-style creation timestamp. Writes are
// transactional: the envelope is staged in a temporary file and
// renamed into place, so a failed operation never leaves a partial
// output behind.
package envelope

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/rmrschub/ahefutil/ahe"
	"github.com/rmrschub/ahefutil/utils/bignum"
)

// ErrEnvelope is the kind of errors caused by malformed envelope
// files: JSON parse failures, missing keys and malformed hex
// magnitudes.
var ErrEnvelope = errors.New("envelope error")

// privateKeys mirrors the private-keys file layout. Field order
// follows the alphabetical key order of existing producers.
type privateKeys struct {
	Created string `json:"created"`
	P       string `json:"p"`
	Q       string `json:"q"`
}

// publicKey mirrors the public-key file layout.
type publicKey struct {
	N       string `json:"N"`
	Created string `json:"created"`
}

// ciphertext mirrors the ciphertext file layout. The sign is an
// integer: +1/-1, or 0/1 from legacy producers mirroring an IEEE-754
// sign bit.
type ciphertext struct {
	Created     string `json:"created"`
	Denominator string `json:"denominator"`
	Numerator   string `json:"numerator"`
	Sign        int    `json:"sign"`
}

// WritePrivateKeys writes sk to path.
func WritePrivateKeys(path string, sk *ahe.SecretKey) error {
	return write(path, privateKeys{
		Created: created(),
		P:       bignum.HexString(sk.P),
		Q:       bignum.HexString(sk.Q),
	})
}

// ReadPrivateKeys reads a private-keys envelope from path.
func ReadPrivateKeys(path string) (sk *ahe.SecretKey, err error) {

	var env privateKeys
	if err = read(path, &env); err != nil {
		return nil, err
	}

	p, err := parseMagnitude(path, "p", env.P)
	if err != nil {
		return nil, err
	}

	q, err := parseMagnitude(path, "q", env.Q)
	if err != nil {
		return nil, err
	}

	if p.Cmp(one) <= 0 || q.Cmp(one) <= 0 {
		return nil, fmt.Errorf("%w: %s: private keys must be > 1", ErrEnvelope, path)
	}

	return &ahe.SecretKey{P: p, Q: q}, nil
}

// WritePublicKey writes pk to path.
func WritePublicKey(path string, pk *ahe.PublicKey) error {
	return write(path, publicKey{
		N:       bignum.HexString(pk.N),
		Created: created(),
	})
}

// ReadPublicKey reads a public-key envelope from path.
func ReadPublicKey(path string) (pk *ahe.PublicKey, err error) {

	var env publicKey
	if err = read(path, &env); err != nil {
		return nil, err
	}

	n, err := parseMagnitude(path, "N", env.N)
	if err != nil {
		return nil, err
	}

	if n.Cmp(one) <= 0 {
		return nil, fmt.Errorf("%w: %s: public key must be > 1", ErrEnvelope, path)
	}

	return &ahe.PublicKey{N: n}, nil
}

// WriteCiphertext writes ct to path. The sign is always emitted in its
// +1/-1 form.
func WriteCiphertext(path string, ct *ahe.Ciphertext) error {
	return write(path, ciphertext{
		Created:     created(),
		Denominator: bignum.HexString(ct.Denominator),
		Numerator:   bignum.HexString(ct.Numerator),
		Sign:        ct.Sign,
	})
}

// ReadCiphertext reads a ciphertext envelope from path. legacySign
// reports whether the file used the historic 0/1 sign encoding, the
// marker of producers predating the corrected sign computation of
// addition and subtraction.
func ReadCiphertext(path string) (ct *ahe.Ciphertext, legacySign bool, err error) {

	var env ciphertext
	if err = read(path, &env); err != nil {
		return nil, false, err
	}

	num, err := parseMagnitude(path, "numerator", env.Numerator)
	if err != nil {
		return nil, false, err
	}

	den, err := parseMagnitude(path, "denominator", env.Denominator)
	if err != nil {
		return nil, false, err
	}

	var sign int
	switch env.Sign {
	case 0:
		sign, legacySign = 1, true
	case 1:
		sign, legacySign = -1, true
	case -1:
		sign = -1
	default:
		return nil, false, fmt.Errorf("%w: %s: invalid sign %d", ErrEnvelope, path, env.Sign)
	}

	return &ahe.Ciphertext{Sign: sign, Numerator: num, Denominator: den}, legacySign, nil
}

func parseMagnitude(path, key, s string) (a *big.Int, err error) {
	if s == "" {
		return nil, fmt.Errorf("%w: %s: missing key %q", ErrEnvelope, path, key)
	}
	if a, err = bignum.ParseHex(s); err != nil {
		return nil, fmt.Errorf("%w: %s: key %q: %s", ErrEnvelope, path, key, err)
	}
	return
}

// created returns a ctime-style timestamp, trailing newline included,
// matching existing envelopes.
func created() string {
	return time.Now().Format(time.ANSIC) + "\n"
}

func read(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %s", ErrEnvelope, path, err)
	}
	return nil
}

// write marshals v with 4-space indentation and a trailing newline and
// renames it into place.
func write(path string, v interface{}) error {

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: %s: %s", ErrEnvelope, path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}

	if err == nil {
		err = os.Chmod(tmp.Name(), 0644)
	}

	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}

	if err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}

var one = big.NewInt(1)
