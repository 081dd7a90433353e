package util

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Cost 12 keeps a hash around 250ms on current hardware, slow enough for
// stored credentials without making staff logins sluggish.
const passwordHashCost = 12

var ErrEmptyPassword = errors.New("password must not be empty")

// HashPassword derives a bcrypt hash for storage. bcrypt only reads the
// first 72 bytes of input; anything longer is silently truncated by the
// algorithm itself.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plain password matches the stored
// hash. Any comparison failure, malformed hash included, reads as a
// mismatch.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
