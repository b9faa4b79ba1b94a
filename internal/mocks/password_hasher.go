// Package mocks holds testify mocks for the domain ports.
package mocks

import (
	"github.com/stretchr/testify/mock"
)

type PasswordHasher struct {
	mock.Mock
}

func (m *PasswordHasher) Encrypt(raw string) (string, error) {
	args := m.Called(raw)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Matches(raw, hashed string) bool {
	args := m.Called(raw, hashed)
	return args.Bool(0)
}
