package crypto

import "errors"

var (
	// ErrConfiguration reports malformed cryptographic inputs: wrong salt
	// or key length, unknown KDF profile, empty secret. These are
	// programmer or data-integrity bugs, fatal to the operation and never
	// caused by a wrong user secret.
	ErrConfiguration = errors.New("invalid cryptographic configuration")

	// ErrAuthentication reports a failed unwrap or decrypt: wrong secret
	// or tampered ciphertext. Expected and user-recoverable; surfaced as
	// "incorrect password/PIN/phrase". Never retried automatically.
	ErrAuthentication = errors.New("authentication failed")
)
