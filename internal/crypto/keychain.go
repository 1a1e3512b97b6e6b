// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"io"
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct{}

// NewKeyChainService constructs the production [KeyChainService].
func NewKeyChainService() KeyChainService {
	return &keyChainService{}
}

// GenerateSalt implements [KeyChainService]. It reads 16 random bytes from
// the OS CSPRNG.
func (k *keyChainService) GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// GenerateContentKey implements [KeyChainService]. It reads 32 random bytes
// from the OS CSPRNG.
func (k *keyChainService) GenerateContentKey() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}
