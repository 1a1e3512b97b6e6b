package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_service_mock.go -package=mock

import "github.com/MKhiriev/go-note-keeper/models"

// KeyChainService owns all client-side cryptography of the zero-knowledge
// scheme. It knows nothing about the network, storage or users; its only
// job is to generate, protect and recover keys.
//
// Scheme:
//
//	contentKey = GenerateContentKey()                    once per user
//	cred       = NewCredential(kind, secret, contentKey) per secret
//	contentKey = UnwrapCredential(cred, secret)          on unlock
//	blob       = EncryptField(contentKey, plaintext)     per note field
type KeyChainService interface {
	// GenerateSalt returns a fresh random 16-byte salt. Salts are not
	// secret — they are stored on the server next to the credential.
	GenerateSalt() ([]byte, error)

	// GenerateContentKey returns a fresh random 256-bit content key. It is
	// called exactly once, when a user's encrypted storage is provisioned,
	// and the key never leaves the client in plaintext.
	GenerateContentKey() ([]byte, error)

	// DeriveKey stretches a secret into a 256-bit key using Argon2id with
	// the given cost profile. Deterministic for identical inputs. Returns
	// ErrConfiguration on malformed salt, empty secret or unknown profile.
	DeriveKey(secret string, salt []byte, profile KDFProfile) ([]byte, error)

	// WrapContentKey encrypts the content key under a derived key.
	// Wrapping never mutates the content key; it only produces a blob.
	WrapContentKey(contentKey, derivedKey []byte) (models.EncryptedBlob, error)

	// UnwrapContentKey recovers the content key from a wrapped blob.
	// A wrong derived key or a tampered blob returns ErrAuthentication.
	UnwrapContentKey(blob models.EncryptedBlob, derivedKey []byte) ([]byte, error)

	// NewCredential generates a salt, derives a key from the secret with
	// the cost profile appropriate for the kind, and wraps the content key
	// into a complete credential record ready for upload.
	NewCredential(kind models.CredentialKind, secret string, contentKey []byte) (models.WrappingCredential, error)

	// UnwrapCredential recovers the content key from a stored credential
	// using the user-supplied secret. Recovery-phrase secrets are
	// normalized before derivation.
	UnwrapCredential(cred models.WrappingCredential, secret string) ([]byte, error)

	// EncryptField protects one plaintext field (note title or body) under
	// the content key with a fresh random nonce.
	EncryptField(key, plaintext []byte) (models.EncryptedBlob, error)

	// DecryptField opens one protected field. Fails closed with
	// ErrAuthentication on any tag mismatch — never returns partial
	// plaintext.
	DecryptField(key []byte, blob models.EncryptedBlob) ([]byte, error)

	// LoginVerifier derives the one-way authentication verifier sent to
	// the server on login and stored there instead of a password hash.
	// Deterministic per (login, password); domain-separated from every
	// wrapping key.
	LoginVerifier(login, password string) (string, error)

	// GeneratePhrase draws a fresh 12-word recovery phrase from the
	// embedded wordlist. The phrase is shown to the user exactly once and
	// used verbatim as KDF input; it is never stored.
	GeneratePhrase() (string, error)
}
