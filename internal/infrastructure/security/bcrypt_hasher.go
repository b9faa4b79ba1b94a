package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-user-accounts/internal/domain/service"
)

const (
	DefaultCost = 12
	MaxCost     = 16
)

// BcryptHasher salts and hashes passwords with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher rejects costs outside [bcrypt.MinCost, MaxCost]. Zero
// selects DefaultCost.
func NewBcryptHasher(cost int) (*BcryptHasher, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > MaxCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, MaxCost)
	}
	return &BcryptHasher{cost: cost}, nil
}

func (h *BcryptHasher) Encrypt(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Matches is false for malformed hashes as well as wrong passwords.
func (h *BcryptHasher) Matches(raw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

var _ service.PasswordHasher = (*BcryptHasher)(nil)
