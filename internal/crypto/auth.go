// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// authDomainSep domain-separates the login verifier from the wrapping keys:
// even though both start from the same password, the two values can never
// be confused or substituted for one another.
const authDomainSep = "note-keeper-auth-v1"

// LoginVerifier implements [KeyChainService]. It derives the one-way
// verifier the server compares on login. The derivation salt comes from the
// login name, so the verifier is computable without a server round-trip;
// the server stores only SHA-256 output and can recover neither the
// password nor any key material.
func (k *keyChainService) LoginVerifier(login, password string) (string, error) {
	if login == "" {
		return "", fmt.Errorf("%w: empty login", ErrConfiguration)
	}

	saltDigest := sha256.Sum256([]byte(authDomainSep + ":" + login))
	derived, err := k.DeriveKey(password, saltDigest[:SaltSize], ProfilePasswordV1)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write(derived)
	h.Write([]byte(authDomainSep))
	return hex.EncodeToString(h.Sum(nil)), nil
}
