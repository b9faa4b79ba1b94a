// Package service declares domain services whose implementation lives in
// infrastructure.
package service

// PasswordHasher turns raw passwords into salted, non-reversible hashes and
// verifies raw passwords against them.
type PasswordHasher interface {
	Encrypt(raw string) (string, error)
	Matches(raw, hashed string) bool
}
