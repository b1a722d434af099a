package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is pinned to 10 rounds; stored hashes must stay compatible
// with accounts created by earlier deployments of this portal.
const BcryptCost = 10

// HashPassword generates a salted bcrypt hash of the password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
