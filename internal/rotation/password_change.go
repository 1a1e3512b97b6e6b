// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rotation

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/session"
	"github.com/MKhiriev/go-note-keeper/models"
)

// ErrCredentialMissing reports that the server holds no credential of the
// kind a flow needs to unlock with.
var ErrCredentialMissing = errors.New("required credential not found on server")

// Result is what a completed rotation hands back to the caller. The
// recovery phrase is present when the flow regenerated one; it is shown to
// the user exactly once and exists nowhere else.
type Result struct {
	RecoveryPhrase string
	CredentialSet  models.CredentialSet
}

// PasswordChange rotates the Password-kind credential and, bundled with it,
// the Recovery-kind one. States: IDLE → VERIFYING_CURRENT → DERIVING_NEW →
// SUBMITTING → DONE, with failures returning to IDLE.
//
// The old wrapped blobs are never discarded client-side until the server
// confirms the atomic replace — a failed remote write leaves the user with
// their previous credentials intact.
type PasswordChange struct {
	vault adapter.VaultServer
	keys  crypto.KeyChainService
	cache *session.KeyCache
	log   *logger.Logger

	fsm *fsm
}

// NewPasswordChange constructs a single-use password change flow.
func NewPasswordChange(vault adapter.VaultServer, keys crypto.KeyChainService, cache *session.KeyCache, log *logger.Logger) *PasswordChange {
	return &PasswordChange{
		vault: vault,
		keys:  keys,
		cache: cache,
		log:   log,
		fsm:   newFSM(StateIdle),
	}
}

// State returns the flow's current state.
func (f *PasswordChange) State() State {
	return f.fsm.current()
}

// Run executes the whole flow. The current password is always verified by
// unwrapping the stored Password-kind credential, even when the session
// already holds the content key. A wrong current password surfaces as
// crypto.ErrAuthentication and resets the flow to IDLE.
func (f *PasswordChange) Run(ctx context.Context, userID int64, login, currentPassword, newPassword string) (Result, error) {
	if err := f.fsm.to(StateVerifyingCurrent); err != nil {
		return Result{}, err
	}

	res, err := f.run(ctx, userID, login, currentPassword, newPassword)
	if err != nil {
		f.fsm.reset()
		return Result{}, err
	}

	if err := f.fsm.to(StateDone); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (f *PasswordChange) run(ctx context.Context, userID int64, login, currentPassword, newPassword string) (Result, error) {
	set, err := f.vault.FetchCredentials(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("fetch credentials: %w", err)
	}

	contentKey, err := unlockWithSecret(f.keys, set, models.CredentialPassword, currentPassword)
	if err != nil {
		return Result{}, err
	}

	if err = f.fsm.to(StateDerivingNew); err != nil {
		return Result{}, err
	}

	submit := func(latest models.CredentialSet) (models.CredentialSet, string, error) {
		passwordCred, err := f.keys.NewCredential(models.CredentialPassword, newPassword, contentKey)
		if err != nil {
			return models.CredentialSet{}, "", fmt.Errorf("build password credential: %w", err)
		}

		phrase, err := f.keys.GeneratePhrase()
		if err != nil {
			return models.CredentialSet{}, "", fmt.Errorf("generate recovery phrase: %w", err)
		}
		recoveryCred, err := f.keys.NewCredential(models.CredentialRecovery, phrase, contentKey)
		if err != nil {
			return models.CredentialSet{}, "", fmt.Errorf("build recovery credential: %w", err)
		}

		verifier, err := f.keys.LoginVerifier(login, newPassword)
		if err != nil {
			return models.CredentialSet{}, "", fmt.Errorf("compute verifier: %w", err)
		}

		// PIN credentials (if any) survive a password change untouched.
		replacement := latest.WithoutKind(models.CredentialPassword, models.CredentialRecovery)
		replacement = append(replacement, passwordCred, recoveryCred)

		saved, err := f.vault.ReplaceCredentialSet(ctx, models.ReplaceCredentialSetRequest{
			UserID:          userID,
			ExpectedVersion: latest.Version,
			Credentials:     replacement,
			NewVerifier:     verifier,
		})
		if err != nil {
			return models.CredentialSet{}, "", err
		}
		return saved, phrase, nil
	}

	if err = f.fsm.to(StateSubmitting); err != nil {
		return Result{}, err
	}

	saved, phrase, err := submit(set)
	if errors.Is(err, adapter.ErrConflict) {
		// Another device rotated first. Re-fetch the latest salts, prove
		// the current secret against them, and recompute everything.
		f.log.Warn().Int64("user_id", userID).Msg("credential version conflict, refetching")

		set, err = f.vault.FetchCredentials(ctx, userID)
		if err != nil {
			return Result{}, fmt.Errorf("refetch credentials: %w", err)
		}
		contentKey, err = unlockWithSecret(f.keys, set, models.CredentialPassword, currentPassword)
		if err != nil {
			return Result{}, err
		}
		saved, phrase, err = submit(set)
	}
	if err != nil {
		return Result{}, fmt.Errorf("replace credential set: %w", err)
	}

	f.cache.Put(userID, contentKey)
	f.log.Info().Int64("user_id", userID).Int64("version", saved.Version).Msg("password rotated")

	return Result{RecoveryPhrase: phrase, CredentialSet: saved}, nil
}

// unlockWithSecret recovers the content key by unwrapping the stored
// credential of the given kind with a just-supplied secret.
func unlockWithSecret(keys crypto.KeyChainService, set models.CredentialSet, kind models.CredentialKind, secret string) ([]byte, error) {
	cred, ok := set.ByKind(kind)
	if !ok {
		return nil, fmt.Errorf("%w: kind %s", ErrCredentialMissing, kind)
	}
	contentKey, err := keys.UnwrapCredential(cred, secret)
	if err != nil {
		return nil, err
	}
	return contentKey, nil
}
