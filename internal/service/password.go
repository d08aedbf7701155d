package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordVerifier checks plaintext passwords against bcrypt hashes.
type PasswordVerifier struct {
	cost int
}

func NewPasswordVerifier(cost int) *PasswordVerifier {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordVerifier{cost: cost}
}

// Matches is false for social accounts, which have no stored hash.
func (v *PasswordVerifier) Matches(plain string, hash *string) bool {
	if hash == nil || *hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*hash), []byte(plain)) == nil
}

func (v *PasswordVerifier) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
