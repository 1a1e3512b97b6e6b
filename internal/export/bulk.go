// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package export decrypts all of a user's notes for a single combined
// download. It is a pure client of the crypto core and the session cache.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/session"
	"github.com/google/uuid"
)

// ExportedNote is one decrypted note in the download.
type ExportedNote struct {
	NoteID    uuid.UUID `json:"note_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Report is the outcome of a bulk export. Per-note decrypt failures are
// counted, not silently dropped, and do not abort the batch.
type Report struct {
	ExportedAt time.Time      `json:"exported_at"`
	Notes      []ExportedNote `json:"notes"`
	Exported   int            `json:"exported"`
	Failed     int            `json:"failed"`
}

// BulkExporter fetches every encrypted note of a user and decrypts it with
// the session's content key.
type BulkExporter struct {
	vault adapter.VaultServer
	keys  crypto.KeyChainService
	cache *session.KeyCache
	log   *logger.Logger
}

// NewBulkExporter constructs a BulkExporter.
func NewBulkExporter(vault adapter.VaultServer, keys crypto.KeyChainService, cache *session.KeyCache, log *logger.Logger) *BulkExporter {
	return &BulkExporter{vault: vault, keys: keys, cache: cache, log: log}
}

// Export decrypts all notes of the user. When the session holds no content
// key it fails up front with session.ErrUnlockRequired and emits nothing —
// never undecrypted or partial items. Cancellation is checked between
// notes; each note is independent, so an aborted export leaves no
// inconsistent state anywhere.
func (e *BulkExporter) Export(ctx context.Context, userID int64) (*Report, error) {
	contentKey, err := e.cache.Get(userID)
	if err != nil {
		return nil, err
	}

	notes, err := e.vault.ListNotes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	report := &Report{
		ExportedAt: time.Now().UTC(),
		Notes:      make([]ExportedNote, 0, len(notes)),
	}

	for _, note := range notes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		title, terr := e.keys.DecryptField(contentKey, note.Title)
		content, cerr := e.keys.DecryptField(contentKey, note.Content)
		if terr != nil || cerr != nil {
			report.Failed++
			e.log.Error().
				Str("note_id", note.NoteID.String()).
				AnErr("title_err", terr).
				AnErr("content_err", cerr).
				Msg("note failed to decrypt, skipping")
			continue
		}

		report.Notes = append(report.Notes, ExportedNote{
			NoteID:    note.NoteID,
			Title:     string(title),
			Content:   string(content),
			UpdatedAt: note.UpdatedAt,
		})
		report.Exported++
	}

	e.log.Info().
		Int64("user_id", userID).
		Int("exported", report.Exported).
		Int("failed", report.Failed).
		Msg("bulk export finished")

	return report, nil
}

// WriteJSON serializes the report as indented JSON for the download file.
func (e *BulkExporter) WriteJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}
