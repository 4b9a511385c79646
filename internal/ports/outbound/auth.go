package outbound

import "github.com/google/uuid"

// TokenManager issues and verifies opaque identity tokens
type TokenManager interface {
	// Issue creates a signed token carrying the user's identity
	Issue(userID uuid.UUID) (string, error)

	// Verify checks a token and returns the identity it carries
	Verify(token string) (uuid.UUID, error)
}

// PasswordHasher hashes and verifies user credentials
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Compare returns ErrBadPassword when the password does not match the hash
	Compare(hash, password string) error
}
