package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const secretKeyAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var errSecretKeyTooShort = errors.New("secret key length must be at least 32")

// GenerateSecretKey returns a random signing key drawn uniformly from an
// unambiguous alphanumeric alphabet.
func GenerateSecretKey(length int) (string, error) {
	if length < 32 {
		return "", errSecretKeyTooShort
	}

	limit := big.NewInt(int64(len(secretKeyAlphabet)))
	key := make([]byte, length)
	for index := range key {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		key[index] = secretKeyAlphabet[position.Int64()]
	}
	return string(key), nil
}
