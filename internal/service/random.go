package service

import (
	"crypto/rand"
	"math/big"
)

const alnumChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const (
	resetTokenLength     = 32
	playerPasswordLength = 8
)

// randomString draws n characters from the alphanumeric alphabet using the
// crypto source. Used for credentials; dice rolls use the plain PRNG.
func randomString(n int) (string, error) {
	max := big.NewInt(int64(len(alnumChars)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = alnumChars[idx.Int64()]
	}
	return string(b), nil
}
