// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const createNoteCacheSchema = `
	CREATE TABLE IF NOT EXISTS note_cache (
		note_id    TEXT PRIMARY KEY,
		user_id    INTEGER NOT NULL,
		title      TEXT NOT NULL,
		content    TEXT NOT NULL,
		version    INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`

const (
	cacheUpsertNote = `
		INSERT INTO note_cache (note_id, user_id, title, content, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (note_id) DO UPDATE
		SET title = excluded.title,
			content = excluded.content,
			version = excluded.version,
			updated_at = excluded.updated_at;`

	cacheListNotes = `
		SELECT note_id, user_id, title, content, version, created_at, updated_at
		FROM note_cache
		WHERE user_id = ?
		ORDER BY updated_at DESC;`

	cacheGetNote = `
		SELECT note_id, user_id, title, content, version, created_at, updated_at
		FROM note_cache
		WHERE user_id = ? AND note_id = ?;`
)

// NoteCache is the client's offline copy of encrypted notes. Only AEAD
// blobs are stored — losing the device database reveals nothing, and the
// cache serves reads (including export) when the server is unreachable.
type NoteCache struct {
	db  *sql.DB
	log *logger.Logger
}

// NewNoteCache opens (creating if needed) the SQLite cache at path and
// ensures the schema exists.
func NewNoteCache(ctx context.Context, path string, log *logger.Logger) (*NoteCache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open note cache: %w", err)
	}
	if err = db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping note cache: %w", err)
	}
	if _, err = db.ExecContext(ctx, createNoteCacheSchema); err != nil {
		return nil, fmt.Errorf("create note cache schema: %w", err)
	}

	log.Debug().Str("path", path).Msg("note cache opened")
	return &NoteCache{db: db, log: log}, nil
}

// Close closes the underlying database.
func (c *NoteCache) Close() error {
	return c.db.Close()
}

// SaveNote stores or refreshes the local copy of an encrypted note.
func (c *NoteCache) SaveNote(ctx context.Context, note models.EncryptedNote) error {
	title, err := note.Title.MarshalText()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	content, err := note.Content.MarshalText()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = c.db.ExecContext(ctx, cacheUpsertNote,
		note.NoteID.String(), note.UserID, string(title), string(content),
		note.Version, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

// ListNotes returns every cached note of the user, newest first.
func (c *NoteCache) ListNotes(ctx context.Context, userID int64) ([]models.EncryptedNote, error) {
	rows, err := c.db.QueryContext(ctx, cacheListNotes, userID)
	if err != nil {
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

// GetNote returns one cached note, or [ErrNoteNotFound].
func (c *NoteCache) GetNote(ctx context.Context, userID int64, noteID uuid.UUID) (models.EncryptedNote, error) {
	row := c.db.QueryRowContext(ctx, cacheGetNote, userID, noteID.String())

	note, err := scanNote(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EncryptedNote{}, ErrNoteNotFound
		}
		return models.EncryptedNote{}, err
	}
	return note, nil
}
