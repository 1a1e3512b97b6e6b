// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/google/uuid"
)

type vaultService struct {
	repos *store.Repositories
	log   *logger.Logger
}

// NewVaultService constructs the server [VaultService].
func NewVaultService(repos *store.Repositories, log *logger.Logger) VaultService {
	return &vaultService{repos: repos, log: log}
}

// GetCredentials implements [VaultService].
func (s *vaultService) GetCredentials(ctx context.Context, userID int64) (models.CredentialSet, error) {
	return s.repos.Credentials.GetCredentialSet(ctx, userID)
}

// ReplaceCredentialSet implements [VaultService]. The authenticated user id
// always wins over whatever the request body claims.
func (s *vaultService) ReplaceCredentialSet(ctx context.Context, userID int64, req models.ReplaceCredentialSetRequest) (models.CredentialSet, error) {
	if req.UserID != 0 && req.UserID != userID {
		return models.CredentialSet{}, ErrForeignData
	}
	if err := validateCredentials(req.Credentials); err != nil {
		return models.CredentialSet{}, err
	}

	return s.repos.Credentials.ReplaceCredentialSet(ctx, userID, req.ExpectedVersion, req.Credentials, req.NewVerifier)
}

// ListNotes implements [VaultService].
func (s *vaultService) ListNotes(ctx context.Context, userID int64) ([]models.EncryptedNote, error) {
	return s.repos.Notes.ListNotes(ctx, userID)
}

// GetNote implements [VaultService].
func (s *vaultService) GetNote(ctx context.Context, userID int64, noteID uuid.UUID) (models.EncryptedNote, error) {
	return s.repos.Notes.GetNote(ctx, userID, noteID)
}

// PutNote implements [VaultService].
func (s *vaultService) PutNote(ctx context.Context, userID int64, note models.EncryptedNote) (models.EncryptedNote, error) {
	if note.UserID != 0 && note.UserID != userID {
		return models.EncryptedNote{}, ErrForeignData
	}
	if note.NoteID == uuid.Nil {
		return models.EncryptedNote{}, fmt.Errorf("%w: missing note id", ErrInvalidDataProvided)
	}
	if note.Title.IsZero() || note.Content.IsZero() {
		return models.EncryptedNote{}, fmt.Errorf("%w: missing encrypted payload", ErrInvalidDataProvided)
	}

	note.UserID = userID
	saved, err := s.repos.Notes.UpsertNote(ctx, note)
	if err != nil {
		return models.EncryptedNote{}, err
	}

	logger.FromContext(ctx).Debug().
		Int64("user_id", userID).
		Str("note_id", saved.NoteID.String()).
		Int64("version", saved.Version).
		Msg("note saved")

	return saved, nil
}
