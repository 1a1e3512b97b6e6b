// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-note-keeper/models"
)

// WrapContentKey implements [KeyChainService]. The wrapped blob is safe to
// store on the server — without the derived key it is random noise.
func (k *keyChainService) WrapContentKey(contentKey, derivedKey []byte) (models.EncryptedBlob, error) {
	if len(contentKey) != keySize {
		return models.EncryptedBlob{}, fmt.Errorf("%w: content key length %d, want %d", ErrConfiguration, len(contentKey), keySize)
	}
	return k.EncryptField(derivedKey, contentKey)
}

// UnwrapContentKey implements [KeyChainService].
func (k *keyChainService) UnwrapContentKey(blob models.EncryptedBlob, derivedKey []byte) ([]byte, error) {
	contentKey, err := k.DecryptField(derivedKey, blob)
	if err != nil {
		return nil, err
	}
	if len(contentKey) != keySize {
		return nil, fmt.Errorf("%w: unwrapped key length %d, want %d", ErrConfiguration, len(contentKey), keySize)
	}
	return contentKey, nil
}

// NewCredential implements [KeyChainService]. It is the only constructor of
// [models.WrappingCredential] records: salt generation, profile selection,
// derivation and wrapping happen together so a credential can never be
// built with mismatched parts.
func (k *keyChainService) NewCredential(kind models.CredentialKind, secret string, contentKey []byte) (models.WrappingCredential, error) {
	profile, err := ProfileForKind(kind)
	if err != nil {
		return models.WrappingCredential{}, err
	}

	salt, err := k.GenerateSalt()
	if err != nil {
		return models.WrappingCredential{}, fmt.Errorf("generate salt: %w", err)
	}

	if kind == models.CredentialRecovery {
		secret = NormalizePhrase(secret)
	}

	derived, err := k.DeriveKey(secret, salt, profile)
	if err != nil {
		return models.WrappingCredential{}, err
	}

	wrapped, err := k.WrapContentKey(contentKey, derived)
	if err != nil {
		return models.WrappingCredential{}, err
	}

	return models.WrappingCredential{
		Kind:       kind,
		Salt:       salt,
		KDFCost:    profile.Name,
		WrappedKey: wrapped,
	}, nil
}

// UnwrapCredential implements [KeyChainService]. Derivation parameters come
// from the stored record, never from local assumptions, so a credential
// rotated by another device still unwraps after a re-fetch.
func (k *keyChainService) UnwrapCredential(cred models.WrappingCredential, secret string) ([]byte, error) {
	profile, err := ProfileByName(cred.KDFCost)
	if err != nil {
		return nil, err
	}

	if cred.Kind == models.CredentialRecovery {
		secret = NormalizePhrase(secret)
	}

	derived, err := k.DeriveKey(secret, cred.Salt, profile)
	if err != nil {
		return nil, err
	}

	return k.UnwrapContentKey(cred.WrappedKey, derived)
}
