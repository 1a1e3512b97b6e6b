// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/session"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/google/uuid"
)

// ProvisionResult is returned once, at account creation: the recovery
// phrase is displayed to the user and then exists nowhere else.
type ProvisionResult struct {
	User           models.User
	RecoveryPhrase string
}

// ClientVaultService is the client-side orchestration layer: it owns the
// provisioning and unlock sequences and encrypts/decrypts notes around the
// vault server, which only ever sees opaque blobs.
type ClientVaultService struct {
	vault     adapter.VaultServer
	keys      crypto.KeyChainService
	cache     *session.KeyCache
	noteCache *store.NoteCache
	log       *logger.Logger
}

// NewClientVaultService constructs the client vault service. noteCache may
// be nil when the client runs without an offline cache.
func NewClientVaultService(vault adapter.VaultServer, keys crypto.KeyChainService, cache *session.KeyCache, noteCache *store.NoteCache, log *logger.Logger) *ClientVaultService {
	return &ClientVaultService{
		vault:     vault,
		keys:      keys,
		cache:     cache,
		noteCache: noteCache,
		log:       log,
	}
}

// Provision creates a new account with encrypted storage: one fresh content
// key, wrapped under the password and under a newly generated recovery
// phrase, registered together with the account. The content key is cached
// so the new session starts unlocked.
func (s *ClientVaultService) Provision(ctx context.Context, login, name, password string) (ProvisionResult, error) {
	contentKey, err := s.keys.GenerateContentKey()
	if err != nil {
		return ProvisionResult{}, fmt.Errorf("generate content key: %w", err)
	}

	passwordCred, err := s.keys.NewCredential(models.CredentialPassword, password, contentKey)
	if err != nil {
		return ProvisionResult{}, err
	}

	phrase, err := s.keys.GeneratePhrase()
	if err != nil {
		return ProvisionResult{}, fmt.Errorf("generate recovery phrase: %w", err)
	}
	recoveryCred, err := s.keys.NewCredential(models.CredentialRecovery, phrase, contentKey)
	if err != nil {
		return ProvisionResult{}, err
	}

	verifier, err := s.keys.LoginVerifier(login, password)
	if err != nil {
		return ProvisionResult{}, err
	}

	user, err := s.vault.Register(ctx, models.RegisterRequest{
		User:        models.User{Login: login, Name: name, Verifier: verifier},
		Credentials: []models.WrappingCredential{passwordCred, recoveryCred},
	})
	if err != nil {
		return ProvisionResult{}, fmt.Errorf("register: %w", err)
	}

	s.cache.Put(user.UserID, contentKey)
	s.log.Info().Int64("user_id", user.UserID).Msg("vault provisioned")

	return ProvisionResult{User: user, RecoveryPhrase: phrase}, nil
}

// Login authenticates with the server and unlocks the vault in one step:
// verifier-based login, then credential fetch and unwrap with the same
// password.
func (s *ClientVaultService) Login(ctx context.Context, login, password string) (models.Token, error) {
	verifier, err := s.keys.LoginVerifier(login, password)
	if err != nil {
		return models.Token{}, err
	}

	token, err := s.vault.Login(ctx, models.LoginRequest{Login: login, Verifier: verifier})
	if err != nil {
		return models.Token{}, err
	}

	if err = s.Unlock(ctx, token.UserID, models.CredentialPassword, password); err != nil {
		return models.Token{}, err
	}
	return token, nil
}

// Unlock recovers the content key by unwrapping the stored credential of
// the given kind with the supplied secret and caches it for the session.
// A wrong secret surfaces as crypto.ErrAuthentication.
func (s *ClientVaultService) Unlock(ctx context.Context, userID int64, kind models.CredentialKind, secret string) error {
	set, err := s.vault.FetchCredentials(ctx, userID)
	if err != nil {
		return fmt.Errorf("fetch credentials: %w", err)
	}

	cred, ok := set.ByKind(kind)
	if !ok {
		return fmt.Errorf("no %s credential on server", kind)
	}

	contentKey, err := s.keys.UnwrapCredential(cred, secret)
	if err != nil {
		return err
	}

	s.cache.Put(userID, contentKey)
	s.log.Debug().Int64("user_id", userID).Str("kind", string(kind)).Msg("vault unlocked")
	return nil
}

// Logout clears the cached content key.
func (s *ClientVaultService) Logout(userID int64) {
	s.cache.Clear(userID)
}

// SaveNote encrypts title and content independently (fresh nonce each)
// under the session's content key and uploads the note. On a version
// conflict the latest server version is fetched once and the write is
// retried — last writer wins.
func (s *ClientVaultService) SaveNote(ctx context.Context, userID int64, note models.Note) (models.EncryptedNote, error) {
	contentKey, err := s.cache.Get(userID)
	if err != nil {
		return models.EncryptedNote{}, err
	}

	if note.NoteID == uuid.Nil {
		note.NoteID = uuid.New()
	}

	encrypted, err := s.encryptNote(userID, note, contentKey)
	if err != nil {
		return models.EncryptedNote{}, err
	}

	if current, err := s.vault.GetNote(ctx, note.NoteID); err == nil {
		encrypted.Version = current.Version
	}

	saved, err := s.vault.PutNote(ctx, encrypted)
	if errors.Is(err, adapter.ErrConflict) {
		current, ferr := s.vault.GetNote(ctx, note.NoteID)
		if ferr != nil {
			return models.EncryptedNote{}, fmt.Errorf("refetch note: %w", ferr)
		}
		encrypted.Version = current.Version
		saved, err = s.vault.PutNote(ctx, encrypted)
	}
	if err != nil {
		return models.EncryptedNote{}, fmt.Errorf("put note: %w", err)
	}

	if s.noteCache != nil {
		if cerr := s.noteCache.SaveNote(ctx, saved); cerr != nil {
			s.log.Warn().Err(cerr).Str("note_id", saved.NoteID.String()).Msg("note cache write failed")
		}
	}

	return saved, nil
}

// LoadNote fetches and decrypts one note. The server is tried first; the
// offline cache serves the read when the server is unreachable.
func (s *ClientVaultService) LoadNote(ctx context.Context, userID int64, noteID uuid.UUID) (models.Note, error) {
	contentKey, err := s.cache.Get(userID)
	if err != nil {
		return models.Note{}, err
	}

	encrypted, err := s.vault.GetNote(ctx, noteID)
	if err != nil {
		if s.noteCache == nil {
			return models.Note{}, err
		}
		s.log.Warn().Err(err).Str("note_id", noteID.String()).Msg("server read failed, trying cache")
		encrypted, err = s.noteCache.GetNote(ctx, userID, noteID)
		if err != nil {
			return models.Note{}, err
		}
	}

	return s.decryptNote(encrypted, contentKey)
}

// ListNotes fetches and decrypts every note of the user.
func (s *ClientVaultService) ListNotes(ctx context.Context, userID int64) ([]models.Note, error) {
	contentKey, err := s.cache.Get(userID)
	if err != nil {
		return nil, err
	}

	encrypted, err := s.vault.ListNotes(ctx, userID)
	if err != nil {
		if s.noteCache == nil {
			return nil, err
		}
		s.log.Warn().Err(err).Msg("server list failed, trying cache")
		encrypted, err = s.noteCache.ListNotes(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	notes := make([]models.Note, 0, len(encrypted))
	for _, e := range encrypted {
		note, derr := s.decryptNote(e, contentKey)
		if derr != nil {
			return nil, derr
		}
		notes = append(notes, note)
	}
	return notes, nil
}

func (s *ClientVaultService) encryptNote(userID int64, note models.Note, contentKey []byte) (models.EncryptedNote, error) {
	title, err := s.keys.EncryptField(contentKey, []byte(note.Title))
	if err != nil {
		return models.EncryptedNote{}, fmt.Errorf("encrypt title: %w", err)
	}
	content, err := s.keys.EncryptField(contentKey, []byte(note.Content))
	if err != nil {
		return models.EncryptedNote{}, fmt.Errorf("encrypt content: %w", err)
	}

	return models.EncryptedNote{
		NoteID:  note.NoteID,
		UserID:  userID,
		Title:   title,
		Content: content,
	}, nil
}

func (s *ClientVaultService) decryptNote(encrypted models.EncryptedNote, contentKey []byte) (models.Note, error) {
	title, err := s.keys.DecryptField(contentKey, encrypted.Title)
	if err != nil {
		return models.Note{}, fmt.Errorf("decrypt title: %w", err)
	}
	content, err := s.keys.DecryptField(contentKey, encrypted.Content)
	if err != nil {
		return models.Note{}, fmt.Errorf("decrypt content: %w", err)
	}

	return models.Note{
		NoteID:  encrypted.NoteID,
		Title:   string(title),
		Content: string(content),
	}, nil
}
