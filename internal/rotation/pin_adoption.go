// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package rotation

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/session"
	"github.com/MKhiriev/go-note-keeper/models"
)

// ErrMalformedPIN reports a PIN that is not exactly six digits. This is
// input validation, not an authentication verdict — the server-held
// credential was never consulted.
var ErrMalformedPIN = errors.New("pin must be exactly 6 digits")

var pinPattern = regexp.MustCompile(`^[0-9]{6}$`)

// PINAdoption adds a password to an account that authenticates through an
// external identity provider and holds only a PIN-kind credential.
//
// Two phases. PIN_INPUT: the six-digit PIN unwraps the server-held PIN
// credential and caches the content key; a wrong PIN keeps the flow in
// PIN_INPUT with a uniform error that reveals nothing about partial
// correctness. PASSWORD_INPUT: the cached key is wrapped under the new
// password and a freshly generated recovery phrase, and both are submitted.
//
// The submitted set omits the PIN credential, so the server's atomic
// replace revokes it: once a real password exists, keeping a six-digit
// secret alive would leave the weakest factor as a permanent way in.
type PINAdoption struct {
	vault adapter.VaultServer
	keys  crypto.KeyChainService
	cache *session.KeyCache
	log   *logger.Logger

	fsm     *fsm
	userID  int64
	lastSet models.CredentialSet
}

// NewPINAdoption constructs a single-use adoption flow starting in
// PIN_INPUT.
func NewPINAdoption(vault adapter.VaultServer, keys crypto.KeyChainService, cache *session.KeyCache, log *logger.Logger) *PINAdoption {
	return &PINAdoption{
		vault: vault,
		keys:  keys,
		cache: cache,
		log:   log,
		fsm:   newFSM(StatePINInput),
	}
}

// State returns the flow's current state.
func (f *PINAdoption) State() State {
	return f.fsm.current()
}

// SubmitPIN drives the PIN_INPUT phase. On success the content key is
// cached and the flow advances to PASSWORD_INPUT. A wrong PIN returns
// crypto.ErrAuthentication and the flow stays in PIN_INPUT.
func (f *PINAdoption) SubmitPIN(ctx context.Context, userID int64, pin string) error {
	if f.fsm.current() != StatePINInput {
		return fmt.Errorf("%w: pin submitted in state %s", ErrInvalidTransition, f.fsm.current())
	}
	if !pinPattern.MatchString(pin) {
		return ErrMalformedPIN
	}

	set, err := f.vault.FetchCredentials(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch credentials: %w", err)
	}

	contentKey, err := unlockWithSecret(f.keys, set, models.CredentialPIN, pin)
	if err != nil {
		// Stays in PIN_INPUT; the caller shows "incorrect PIN" and asks
		// again.
		return err
	}

	f.cache.Put(userID, contentKey)
	f.userID = userID
	f.lastSet = set

	return f.fsm.to(StatePasswordInput)
}

// SubmitPassword drives the PASSWORD_INPUT phase: wraps the cached content
// key under the new password and a fresh recovery phrase and submits the
// replacement set. Returns the phrase for its single showing.
func (f *PINAdoption) SubmitPassword(ctx context.Context, login, newPassword string) (Result, error) {
	if f.fsm.current() != StatePasswordInput {
		return Result{}, fmt.Errorf("%w: password submitted in state %s", ErrInvalidTransition, f.fsm.current())
	}

	contentKey, err := f.cache.Get(f.userID)
	if err != nil {
		// Session evaporated between phases (logout, cache cleared).
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

		// Drop the PIN credential: adoption revokes the bootstrap secret.
		replacement := latest.WithoutKind(models.CredentialPIN, models.CredentialPassword, models.CredentialRecovery)
		replacement = append(replacement, passwordCred, recoveryCred)

		saved, err := f.vault.ReplaceCredentialSet(ctx, models.ReplaceCredentialSetRequest{
			UserID:          f.userID,
			ExpectedVersion: latest.Version,
			Credentials:     replacement,
			NewVerifier:     verifier,
		})
		if err != nil {
			return models.CredentialSet{}, "", err
		}
		return saved, phrase, nil
	}

	saved, phrase, err := submit(f.lastSet)
	if errors.Is(err, adapter.ErrConflict) {
		f.log.Warn().Int64("user_id", f.userID).Msg("credential version conflict, refetching")

		latest, ferr := f.vault.FetchCredentials(ctx, f.userID)
		if ferr != nil {
			return Result{}, fmt.Errorf("refetch credentials: %w", ferr)
		}
		f.lastSet = latest
		saved, phrase, err = submit(latest)
	}
	if err != nil {
		return Result{}, fmt.Errorf("replace credential set: %w", err)
	}

	if err := f.fsm.to(StateDone); err != nil {
		return Result{}, err
	}

	f.log.Info().Int64("user_id", f.userID).Int64("version", saved.Version).Msg("password adopted, pin credential revoked")
	return Result{RecoveryPhrase: phrase, CredentialSet: saved}, nil
}
