// Package password hashes and verifies principal secrets with bcrypt.
//
// Plaintext secrets are never logged or returned by anything in this package.
package password

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmpty is returned by Hash for an empty secret.
var ErrEmpty = errors.New("password: empty secret")

// dummyHash is compared against when no stored hash exists so the failure
// path spends the same bcrypt effort as a wrong password.
var dummyHash = mustHash("memberhub-dummy-secret")

// maxBcryptLen is the longest input bcrypt accepts.
const maxBcryptLen = 72

// prepare returns the bytes handed to bcrypt. Secrets longer than bcrypt's
// limit are reduced to the base64 of their SHA-256 so every byte counts.
func prepare(secret string) []byte {
	if len(secret) <= maxBcryptLen {
		return []byte(secret)
	}
	sum := sha256.Sum256([]byte(secret))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// Hash returns a salted bcrypt hash of secret. Secrets of any length are
// accepted.
func Hash(secret string) (string, error) {
	if secret == "" {
		return "", ErrEmpty
	}
	b, err := bcrypt.GenerateFromPassword(prepare(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether secret matches the stored hash. An empty or
// malformed hash never verifies.
func Verify(hash, secret string) bool {
	if hash == "" || secret == "" {
		VerifyDummy(secret)
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), prepare(secret)) == nil
}

// VerifyDummy burns one comparison against a fixed hash and always reports false.
func VerifyDummy(secret string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, prepare(secret))
	return false
}

func mustHash(s string) []byte {
	b, err := bcrypt.GenerateFromPassword([]byte(s), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return b
}
