package store

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/repositories_mock.go -package=mock

// UserRepository persists account records. The server stores only the
// one-way verifier; it never sees a password or key.
type UserRepository interface {
	// CreateUser persists a new account and returns it with
	// server-assigned fields. Returns ErrLoginAlreadyExists on a login
	// collision.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindByLogin returns the account for a login, or ErrUserNotFound.
	FindByLogin(ctx context.Context, login string) (models.User, error)

	// UpdateVerifier replaces the stored login verifier. Called inside the
	// credential-set replace transaction when a rotation changed the
	// password.
	UpdateVerifier(ctx context.Context, userID int64, verifier string) error
}

// CredentialRepository persists the versioned credential sets. Records are
// opaque to the server: salt and KDF cost are public parameters, the
// wrapped key is noise without the user's secret.
type CredentialRepository interface {
	// GetCredentialSet returns the user's complete credential set with its
	// current version. A user with no credentials yet gets an empty set at
	// version zero.
	GetCredentialSet(ctx context.Context, userID int64) (models.CredentialSet, error)

	// ReplaceCredentialSet atomically replaces the whole set inside one
	// transaction: the stored version must equal expectedVersion or the
	// call fails with ErrVersionConflict and changes nothing. newVerifier,
	// when non-empty, updates the user's login verifier in the same
	// transaction.
	ReplaceCredentialSet(ctx context.Context, userID, expectedVersion int64, creds []models.WrappingCredential, newVerifier string) (models.CredentialSet, error)
}

// NoteRepository persists encrypted notes. Title and content are opaque
// AEAD blobs.
type NoteRepository interface {
	// ListNotes returns every note of the user.
	ListNotes(ctx context.Context, userID int64) ([]models.EncryptedNote, error)

	// GetNote returns one note, or ErrNoteNotFound.
	GetNote(ctx context.Context, userID int64, noteID uuid.UUID) (models.EncryptedNote, error)

	// UpsertNote creates the note or updates it when note.Version matches
	// the stored version; a stale version fails with ErrVersionConflict.
	UpsertNote(ctx context.Context, note models.EncryptedNote) (models.EncryptedNote, error)
}

// Repositories bundles the server-side persistence layer.
type Repositories struct {
	Users       UserRepository
	Credentials CredentialRepository
	Notes       NoteRepository
}

// NewRepositories wires all repositories onto one database connection.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(db),
		Credentials: NewCredentialRepository(db),
		Notes:       NewNoteRepository(db),
	}
}
