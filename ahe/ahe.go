// Package ahe implements a toy additively- and multiplicatively-
// homomorphic encryption scheme over the rational numbers.
//
// A plaintext is a finite float64 approximated by a signed rational
// n/d. Encryption under the secret primes (p, q) raises both magnitudes
// to the power p modulo N = p*q; by Fermat's little theorem the residues
// of n and d modulo p survive, so the rational is recoverable with p.
// Any party holding only N can combine ciphertexts so that decryption
// yields the sum, difference or product of the original plaintexts,
// within the range and precision limits of the parameters.
//
// The scheme is known-weak and reproduces an existing construction; it
// offers no semantic security and must not be used to protect data.
package ahe

import (
	"errors"
)

// ErrArithmetic is the kind of errors caused by degenerate values
// reaching a modular operation, such as a zero denominator residue
// during decryption.
var ErrArithmetic = errors.New("arithmetic error")

// ErrKeyGen is the kind of errors caused by the prime search
// exhausting its retry budget.
var ErrKeyGen = errors.New("key generation error")
