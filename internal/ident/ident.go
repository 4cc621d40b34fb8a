// Package ident generates short random labels used to disambiguate output
// filenames across notes sharing a title. Labels are not globally unique;
// the filesystem collision guard is the actual safety net.
package ident

import "math/rand/v2"

// alphabet is uppercase-only for readability in filenames.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultLength is the label length used for note identifiers.
const DefaultLength = 6

// New returns a random identifier of DefaultLength.
func New() string {
	return NewN(DefaultLength)
}

// NewN returns a random identifier of length n, drawn uniformly with
// replacement from the 36-symbol alphabet.
func NewN(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}
