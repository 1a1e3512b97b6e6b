// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The cache runs against a real on-disk SQLite database: the point of the
// tests is the schema and the upsert arm, not the driver.
func newTestNoteCache(t *testing.T) *NoteCache {
	t.Helper()

	cache, err := NewNoteCache(context.Background(), filepath.Join(t.TempDir(), "notes.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })

	return cache
}

func TestNoteCache_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "notes.db")

	cache, err := NewNoteCache(context.Background(), path, logger.Nop())
	require.NoError(t, err)
	defer cache.Close()

	assert.FileExists(t, path)
}

func TestNoteCache_SaveAndGet(t *testing.T) {
	cache := newTestNoteCache(t)
	ctx := context.Background()

	note := testEncryptedNote(t, 7, 0x10)
	require.NoError(t, cache.SaveNote(ctx, note))

	got, err := cache.GetNote(ctx, 7, note.NoteID)
	require.NoError(t, err)
	assert.Equal(t, note.NoteID, got.NoteID)
	assert.Equal(t, note.Title, got.Title)
	assert.Equal(t, note.Content, got.Content)
	assert.Equal(t, note.Version, got.Version)
}

func TestNoteCache_SaveNote_RefreshesExisting(t *testing.T) {
	cache := newTestNoteCache(t)
	ctx := context.Background()

	note := testEncryptedNote(t, 7, 0x10)
	require.NoError(t, cache.SaveNote(ctx, note))

	updated := testEncryptedNote(t, 7, 0x20)
	updated.NoteID = note.NoteID
	updated.Version = note.Version + 1
	require.NoError(t, cache.SaveNote(ctx, updated))

	got, err := cache.GetNote(ctx, 7, note.NoteID)
	require.NoError(t, err)
	assert.Equal(t, updated.Version, got.Version)
	assert.Equal(t, updated.Title, got.Title)

	notes, err := cache.ListNotes(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, notes, 1, "upsert must not duplicate the row")
}

func TestNoteCache_GetNote_NotFound(t *testing.T) {
	cache := newTestNoteCache(t)

	_, err := cache.GetNote(context.Background(), 7, uuid.New())
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteCache_ListNotes_PerUser(t *testing.T) {
	cache := newTestNoteCache(t)
	ctx := context.Background()

	mine := testEncryptedNote(t, 7, 0x10)
	theirs := testEncryptedNote(t, 8, 0x20)
	require.NoError(t, cache.SaveNote(ctx, mine))
	require.NoError(t, cache.SaveNote(ctx, theirs))

	notes, err := cache.ListNotes(ctx, 7)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, mine.NoteID, notes[0].NoteID)

	empty, err := cache.ListNotes(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
