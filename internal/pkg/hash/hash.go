// Package hash digests secrets so they are never held or compared in plaintext.
//
// HMACSHA256 is used for short-lived OTP codes, where the digest has to be
// deterministic. Bcrypt is used for long-lived shared secrets read from
// configuration.
package hash

// Hash digests a plaintext and verifies a plaintext against a digest.
type Hash interface {
	Hash(plaintext string) ([]byte, error)
	Verify(hashed, plaintext string) bool
}
