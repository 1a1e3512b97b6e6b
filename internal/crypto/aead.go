// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MKhiriev/go-note-keeper/models"
)

// keySize is the AES-256 key length used for both the content key and
// every derived key.
const keySize = 32

// EncryptField implements [KeyChainService]. AES-256-GCM with a fresh
// random 12-byte nonce per call, so encrypting identical plaintext twice
// under the same key yields different ciphertext.
func (k *keyChainService) EncryptField(key, plaintext []byte) (models.EncryptedBlob, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return models.EncryptedBlob{}, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return models.EncryptedBlob{}, fmt.Errorf("generate nonce: %w", err)
	}

	// Seal appends the tag to the ciphertext; split it back out so the
	// stored record keeps nonce, ciphertext and tag as distinct parts.
	sealed := gcm.Seal(nil, nonce, plaintext, nil)
	tagStart := len(sealed) - gcm.Overhead()

	return models.EncryptedBlob{
		Nonce:      nonce,
		Ciphertext: sealed[:tagStart],
		Tag:        sealed[tagStart:],
	}, nil
}

// DecryptField implements [KeyChainService]. Fails closed: any tag mismatch
// (wrong key or tampered bytes) returns ErrAuthentication and no plaintext.
func (k *keyChainService) DecryptField(key []byte, blob models.EncryptedBlob) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(blob.Nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: nonce length %d, want %d", ErrConfiguration, len(blob.Nonce), gcm.NonceSize())
	}
	if len(blob.Tag) != gcm.Overhead() {
		return nil, fmt.Errorf("%w: tag length %d, want %d", ErrConfiguration, len(blob.Tag), gcm.Overhead())
	}

	sealed := append(append([]byte(nil), blob.Ciphertext...), blob.Tag...)

	plaintext, err := gcm.Open(nil, blob.Nonce, sealed, nil)
	if err != nil {
		// Almost always a wrong secret producing a wrong derived key.
		return nil, fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != keySize {
		return nil, fmt.Errorf("%w: key length %d, want %d", ErrConfiguration, len(key), keySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
