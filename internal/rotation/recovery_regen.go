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

// RecoveryRegen replaces only the Recovery-kind credential with a freshly
// generated phrase. Same state shape as a password change; the unlock
// secret is the current password, or an already-cached content key when the
// session is unlocked.
type RecoveryRegen struct {
	vault adapter.VaultServer
	keys  crypto.KeyChainService
	cache *session.KeyCache
	log   *logger.Logger

	fsm *fsm
}

// NewRecoveryRegen constructs a single-use recovery regeneration flow.
func NewRecoveryRegen(vault adapter.VaultServer, keys crypto.KeyChainService, cache *session.KeyCache, log *logger.Logger) *RecoveryRegen {
	return &RecoveryRegen{
		vault: vault,
		keys:  keys,
		cache: cache,
		log:   log,
		fsm:   newFSM(StateIdle),
	}
}

// State returns the flow's current state.
func (f *RecoveryRegen) State() State {
	return f.fsm.current()
}

// Run executes the flow. currentPassword may be empty when the session
// cache already holds the content key; otherwise it is required.
func (f *RecoveryRegen) Run(ctx context.Context, userID int64, currentPassword string) (Result, error) {
	if err := f.fsm.to(StateVerifyingCurrent); err != nil {
		return Result{}, err
	}

	res, err := f.run(ctx, userID, currentPassword)
	if err != nil {
		f.fsm.reset()
		return Result{}, err
	}

	if err := f.fsm.to(StateDone); err != nil {
		return Result{}, err
	}
	return res, nil
}

func (f *RecoveryRegen) run(ctx context.Context, userID int64, currentPassword string) (Result, error) {
	set, err := f.vault.FetchCredentials(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("fetch credentials: %w", err)
	}

	contentKey, err := f.obtainContentKey(userID, set, currentPassword)
	if err != nil {
		return Result{}, err
	}

	if err = f.fsm.to(StateDerivingNew); err != nil {
		return Result{}, err
	}

	submit := func(latest models.CredentialSet) (models.CredentialSet, string, error) {
		phrase, err := f.keys.GeneratePhrase()
		if err != nil {
			return models.CredentialSet{}, "", fmt.Errorf("generate recovery phrase: %w", err)
		}
		recoveryCred, err := f.keys.NewCredential(models.CredentialRecovery, phrase, contentKey)
		if err != nil {
			return models.CredentialSet{}, "", fmt.Errorf("build recovery credential: %w", err)
		}

		replacement := append(latest.WithoutKind(models.CredentialRecovery), recoveryCred)

		saved, err := f.vault.ReplaceCredentialSet(ctx, models.ReplaceCredentialSetRequest{
			UserID:          userID,
			ExpectedVersion: latest.Version,
			Credentials:     replacement,
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
		f.log.Warn().Int64("user_id", userID).Msg("credential version conflict, refetching")

		set, err = f.vault.FetchCredentials(ctx, userID)
		if err != nil {
			return Result{}, fmt.Errorf("refetch credentials: %w", err)
		}
		contentKey, err = f.obtainContentKey(userID, set, currentPassword)
		if err != nil {
			return Result{}, err
		}
		saved, phrase, err = submit(set)
	}
	if err != nil {
		return Result{}, fmt.Errorf("replace credential set: %w", err)
	}

	f.cache.Put(userID, contentKey)
	f.log.Info().Int64("user_id", userID).Int64("version", saved.Version).Msg("recovery phrase regenerated")

	return Result{RecoveryPhrase: phrase, CredentialSet: saved}, nil
}

// obtainContentKey prefers a supplied password (which also proves the user
// still knows it) and falls back to the session cache.
func (f *RecoveryRegen) obtainContentKey(userID int64, set models.CredentialSet, currentPassword string) ([]byte, error) {
	if currentPassword != "" {
		return unlockWithSecret(f.keys, set, models.CredentialPassword, currentPassword)
	}
	return f.cache.Get(userID)
}
