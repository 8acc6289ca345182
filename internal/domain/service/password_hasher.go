// Package service defines interfaces for core, stateless domain logic.
package service

// PasswordHasher hashes and verifies account passwords. Check is the only supported
// comparison path; hashes are never compared for equality.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool
}
