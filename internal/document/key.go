package document

import "math/rand"

const keyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateKey returns a short random block key.
func GenerateKey() string {
	var b [5]byte
	for i := range b {
		b[i] = keyAlphabet[rand.Intn(len(keyAlphabet))]
	}
	return string(b[:])
}
