// Package service provides the credential primitives used by authentication:
// Argon2id password hashing and SHA-256 hashed bearer tokens.
package service

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// GeneratePassword returns a random password and its hash. Used when an
	// operator creates a user without choosing a password.
	GeneratePassword() (plainPassword string, hashedPassword string, err error)

	HashPassword(plainPassword string) (string, error)

	// ComparePassword reports whether plainPassword matches hashedPassword.
	ComparePassword(plainPassword, hashedPassword string) bool
}

// TokenService generates bearer tokens and the hashes stored in their place.
type TokenService interface {
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken returns the hex SHA-256 of plainToken.
	HashToken(plainToken string) string
}
