// ids.go - Opaque submission identifier generation.
package spool

import "math/rand"

const (
	idLength   = 32
	idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// newSubmissionID returns a 32-character identifier with each character
// drawn independently and uniformly from the alphanumeric alphabet.
// Uniqueness is probabilistic; Accept additionally probes the spool before
// committing to an id.
func newSubmissionID() string {
	b := make([]byte, idLength)
	for i := range b {
		b[i] = idAlphabet[rand.Intn(len(idAlphabet))]
	}
	return string(b)
}
