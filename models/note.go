package models

import (
	"time"

	"github.com/google/uuid"
)

// EncryptedNote is a note as the server sees it: title and content are
// independent AEAD blobs under the same content key, each with its own
// nonce. Version implements per-note optimistic concurrency, last writer
// wins after a re-fetch.
type EncryptedNote struct {
	NoteID    uuid.UUID     `json:"note_id"`
	UserID    int64         `json:"user_id"`
	Title     EncryptedBlob `json:"title"`
	Content   EncryptedBlob `json:"content"`
	Version   int64         `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Note is the client-side plaintext form. It exists only in memory on a
// device that holds the unwrapped content key.
type Note struct {
	NoteID  uuid.UUID
	Title   string
	Content string
}
