package crypto

import (
	"crypto/rand"
	"math/big"
)

const (
	// AlphanumericAlphabet is the default alphabet for generated secrets.
	AlphanumericAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// RandomString returns a random string of the given length drawn from
// alphabet using crypto/rand. It panics on a failing entropy source, which
// is not recoverable.
func RandomString(length int, alphabet string) string {
	b := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = alphabet[n.Int64()]
	}
	return string(b)
}
