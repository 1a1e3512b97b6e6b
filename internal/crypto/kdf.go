// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"

	"github.com/MKhiriev/go-note-keeper/models"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the required salt length for every KDF profile.
const SaltSize = 16

// KDFProfile is a named, frozen Argon2id parameter set. The name is
// persisted with each credential so old credentials keep deriving with the
// parameters they were created under. Profiles are append-only: changing a
// published profile would brick every credential that references it.
type KDFProfile struct {
	Name      string
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
}

var (
	// ProfilePasswordV1 follows the OWASP (2024) Argon2id recommendation.
	// Used for Password-kind credentials and for Recovery-kind ones — a
	// 12-word phrase already carries ~132 bits of entropy, so it needs no
	// extra stretching.
	ProfilePasswordV1 = KDFProfile{
		Name:      "argon2id-password-v1",
		Time:      1,
		MemoryKiB: 64 * 1024, // 64 MiB
		Threads:   4,
		KeyLen:    32,
	}

	// ProfilePINV1 is materially more expensive than the password profile:
	// a 6-digit PIN has only ~10^6 candidates, so the per-guess cost must
	// offset the tiny search space.
	ProfilePINV1 = KDFProfile{
		Name:      "argon2id-pin-v1",
		Time:      4,
		MemoryKiB: 256 * 1024, // 256 MiB
		Threads:   4,
		KeyLen:    32,
	}
)

// ProfileByName resolves a persisted profile identifier. Unknown names are
// a data-integrity problem, reported as ErrConfiguration.
func ProfileByName(name string) (KDFProfile, error) {
	switch name {
	case ProfilePasswordV1.Name:
		return ProfilePasswordV1, nil
	case ProfilePINV1.Name:
		return ProfilePINV1, nil
	}
	return KDFProfile{}, fmt.Errorf("%w: unknown kdf profile %q", ErrConfiguration, name)
}

// ProfileForKind returns the cost profile new credentials of the given kind
// are created with.
func ProfileForKind(kind models.CredentialKind) (KDFProfile, error) {
	switch kind {
	case models.CredentialPassword, models.CredentialRecovery:
		return ProfilePasswordV1, nil
	case models.CredentialPIN:
		return ProfilePINV1, nil
	}
	return KDFProfile{}, fmt.Errorf("%w: unknown credential kind %q", ErrConfiguration, kind)
}

// DeriveKey implements [KeyChainService]. Argon2id is CPU- and memory-hard
// on purpose; callers should treat this as a blocking call of hundreds of
// milliseconds and pass it through their context-aware call paths.
func (k *keyChainService) DeriveKey(secret string, salt []byte, profile KDFProfile) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrConfiguration)
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt length %d, want %d", ErrConfiguration, len(salt), SaltSize)
	}
	if profile.Time == 0 || profile.MemoryKiB == 0 || profile.Threads == 0 || profile.KeyLen == 0 {
		return nil, fmt.Errorf("%w: incomplete kdf profile %q", ErrConfiguration, profile.Name)
	}

	key := argon2.IDKey(
		[]byte(secret),
		salt,
		profile.Time,
		profile.MemoryKiB,
		profile.Threads,
		profile.KeyLen,
	)
	return key, nil
}
