package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// PasswordHasher turns a plain password into its stored form and checks
// candidates against it.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(stored, plain string) bool
}

// NewPasswordHasher returns the hasher for mode: "plain" stores passwords as
// given; anything else uses bcrypt.
func NewPasswordHasher(mode string) PasswordHasher {
	if mode == "plain" {
		return PlainHasher{}
	}
	return BcryptHasher{Cost: bcryptCost}
}

// BcryptHasher stores salted bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (h BcryptHasher) Matches(stored, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil
}

// PlainHasher keeps the password unchanged and compares by exact equality.
type PlainHasher struct{}

func (PlainHasher) Hash(plain string) (string, error) { return plain, nil }

func (PlainHasher) Matches(stored, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1
}
