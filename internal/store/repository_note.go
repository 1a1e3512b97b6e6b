// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/google/uuid"
)

// noteRepository is the PostgreSQL-backed implementation of
// [NoteRepository].
type noteRepository struct {
	db *DB
}

// NewNoteRepository constructs a [NoteRepository] on the given connection.
func NewNoteRepository(db *DB) NoteRepository {
	return &noteRepository{db: db}
}

// ListNotes returns every note of the user, newest first.
func (r *noteRepository) ListNotes(ctx context.Context, userID int64) ([]models.EncryptedNote, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllNotes, userID)
	if err != nil {
		log.Err(err).Str("func", "noteRepository.ListNotes").Int64("user_id", userID).Msg("failed to query notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.EncryptedNote, 0, 50)
	for rows.Next() {
		note, err := scanNote(rows.Scan)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return notes, nil
}

// GetNote returns one note, or [ErrNoteNotFound].
func (r *noteRepository) GetNote(ctx context.Context, userID int64, noteID uuid.UUID) (models.EncryptedNote, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, getNote, userID, noteID.String())

	note, err := scanNote(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedNote{}, ErrNoteNotFound
		}
		log.Err(err).Str("func", "noteRepository.GetNote").Int64("user_id", userID).Str("note_id", noteID.String()).Msg("failed to get note")
		return models.EncryptedNote{}, err
	}

	return note, nil
}

// UpsertNote creates or updates a note with a per-note optimistic version
// check. A zero-row result means the conditional update arm rejected a
// stale version.
func (r *noteRepository) UpsertNote(ctx context.Context, note models.EncryptedNote) (models.EncryptedNote, error) {
	log := logger.FromContext(ctx)

	title, err := note.Title.MarshalText()
	if err != nil {
		return models.EncryptedNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	content, err := note.Content.MarshalText()
	if err != nil {
		return models.EncryptedNote{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, upsertNote,
		note.NoteID.String(), note.UserID, string(title), string(content), note.Version)

	saved, err := scanNote(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "noteRepository.UpsertNote").
				Int64("user_id", note.UserID).
				Str("note_id", note.NoteID.String()).
				Int64("version", note.Version).
				Msg("note version conflict")
			return models.EncryptedNote{}, ErrVersionConflict
		}
		return models.EncryptedNote{}, err
	}

	return saved, nil
}

func scanNote(scan func(...any) error) (models.EncryptedNote, error) {
	var (
		note    models.EncryptedNote
		noteID  string
		title   string
		content string
	)
	err := scan(&noteID, &note.UserID, &title, &content, &note.Version, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedNote{}, err
		}
		return models.EncryptedNote{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	note.NoteID, err = uuid.Parse(noteID)
	if err != nil {
		return models.EncryptedNote{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if err = note.Title.UnmarshalText([]byte(title)); err != nil {
		return models.EncryptedNote{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if err = note.Content.UnmarshalText([]byte(content)); err != nil {
		return models.EncryptedNote{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return note, nil
}
