// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/crypto"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/mock"
	"github.com/MKhiriev/go-note-keeper/internal/session"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// The client service tests run against the real crypto core and a mocked
// vault server: what matters is that the right blobs cross the wire and
// that they decrypt back with the session key.
func newClientVault(t *testing.T, noteCache *store.NoteCache) (*ClientVaultService, *mock.MockVaultServer, *session.KeyCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	vault := mock.NewMockVaultServer(ctrl)
	cache := session.NewKeyCache()
	svc := NewClientVaultService(vault, crypto.NewKeyChainService(), cache, noteCache, logger.Nop())

	return svc, vault, cache
}

func TestClientVault_Provision(t *testing.T) {
	svc, vault, cache := newClientVault(t, nil)
	keys := crypto.NewKeyChainService()

	var registered models.RegisterRequest
	vault.EXPECT().Register(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.RegisterRequest) (models.User, error) {
			registered = req
			created := req.User
			created.UserID = 7
			return created, nil
		})

	res, err := svc.Provision(context.Background(), "alice", "Alice", "a long password")
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.User.UserID)
	assert.Len(t, strings.Fields(res.RecoveryPhrase), crypto.PhraseWordCount)

	// The server saw a verifier and two wrapping credentials, nothing else.
	assert.NotEmpty(t, registered.User.Verifier)
	require.Len(t, registered.Credentials, 2)

	passwordCred, ok := models.CredentialSet{Credentials: registered.Credentials}.ByKind(models.CredentialPassword)
	require.True(t, ok)
	recoveryCred, ok := models.CredentialSet{Credentials: registered.Credentials}.ByKind(models.CredentialRecovery)
	require.True(t, ok)

	// Both uploaded credentials unwrap to the cached session key.
	contentKey, err := cache.Get(7)
	require.NoError(t, err)

	fromPassword, err := keys.UnwrapCredential(passwordCred, "a long password")
	require.NoError(t, err)
	assert.Equal(t, contentKey, fromPassword)

	fromPhrase, err := keys.UnwrapCredential(recoveryCred, res.RecoveryPhrase)
	require.NoError(t, err)
	assert.Equal(t, contentKey, fromPhrase)
}

func TestClientVault_LoginUnlocks(t *testing.T) {
	svc, vault, cache := newClientVault(t, nil)
	keys := crypto.NewKeyChainService()

	contentKey, err := keys.GenerateContentKey()
	require.NoError(t, err)
	passwordCred, err := keys.NewCredential(models.CredentialPassword, "a long password", contentKey)
	require.NoError(t, err)

	expectedVerifier, err := keys.LoginVerifier("alice", "a long password")
	require.NoError(t, err)

	gomock.InOrder(
		vault.EXPECT().Login(gomock.Any(), models.LoginRequest{Login: "alice", Verifier: expectedVerifier}).
			Return(models.Token{SignedString: "signed-jwt", UserID: 7}, nil),
		vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).
			Return(models.CredentialSet{UserID: 7, Version: 1, Credentials: []models.WrappingCredential{passwordCred}}, nil),
	)

	token, err := svc.Login(context.Background(), "alice", "a long password")
	require.NoError(t, err)
	assert.Equal(t, int64(7), token.UserID)

	cached, err := cache.Get(7)
	require.NoError(t, err)
	assert.Equal(t, contentKey, cached)
}

func TestClientVault_Unlock_WrongSecret(t *testing.T) {
	svc, vault, cache := newClientVault(t, nil)
	keys := crypto.NewKeyChainService()

	contentKey, err := keys.GenerateContentKey()
	require.NoError(t, err)
	passwordCred, err := keys.NewCredential(models.CredentialPassword, "right password", contentKey)
	require.NoError(t, err)

	vault.EXPECT().FetchCredentials(gomock.Any(), int64(7)).
		Return(models.CredentialSet{UserID: 7, Credentials: []models.WrappingCredential{passwordCred}}, nil)

	err = svc.Unlock(context.Background(), 7, models.CredentialPassword, "wrong password")
	assert.ErrorIs(t, err, crypto.ErrAuthentication)
	assert.False(t, cache.Has(7))
}

func TestClientVault_SaveNote_Locked(t *testing.T) {
	svc, _, _ := newClientVault(t, nil)

	_, err := svc.SaveNote(context.Background(), 7, models.Note{Title: "plans"})
	assert.ErrorIs(t, err, session.ErrUnlockRequired)
}

func TestClientVault_SaveAndLoadNote(t *testing.T) {
	svc, vault, cache := newClientVault(t, nil)
	keys := crypto.NewKeyChainService()

	contentKey, err := keys.GenerateContentKey()
	require.NoError(t, err)
	cache.Put(7, contentKey)

	var uploaded models.EncryptedNote
	vault.EXPECT().GetNote(gomock.Any(), gomock.Any()).Return(models.EncryptedNote{}, adapter.ErrNotFound)
	vault.EXPECT().PutNote(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, note models.EncryptedNote) (models.EncryptedNote, error) {
			uploaded = note
			note.Version = 1
			return note, nil
		})

	saved, err := svc.SaveNote(context.Background(), 7, models.Note{Title: "plans", Content: "ship it"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, saved.NoteID, "a new note gets a generated id")
	assert.Equal(t, int64(7), uploaded.UserID)

	// The wire never carries plaintext.
	title, err := uploaded.Title.MarshalText()
	require.NoError(t, err)
	assert.NotContains(t, string(title), "plans")

	vault.EXPECT().GetNote(gomock.Any(), saved.NoteID).Return(saved, nil)

	loaded, err := svc.LoadNote(context.Background(), 7, saved.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "plans", loaded.Title)
	assert.Equal(t, "ship it", loaded.Content)
}

// A version conflict means another device saved first: re-fetch the current
// version and retry the write once.
func TestClientVault_SaveNote_ConflictRetry(t *testing.T) {
	svc, vault, cache := newClientVault(t, nil)
	keys := crypto.NewKeyChainService()

	contentKey, err := keys.GenerateContentKey()
	require.NoError(t, err)
	cache.Put(7, contentKey)

	noteID := uuid.New()

	gomock.InOrder(
		vault.EXPECT().GetNote(gomock.Any(), noteID).
			Return(models.EncryptedNote{NoteID: noteID, Version: 1}, nil),
		vault.EXPECT().PutNote(gomock.Any(), gomock.Any()).
			Return(models.EncryptedNote{}, adapter.ErrConflict),
		vault.EXPECT().GetNote(gomock.Any(), noteID).
			Return(models.EncryptedNote{NoteID: noteID, Version: 2}, nil),
		vault.EXPECT().PutNote(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, note models.EncryptedNote) (models.EncryptedNote, error) {
				assert.Equal(t, int64(2), note.Version, "retry must carry the refreshed version")
				note.Version = 3
				return note, nil
			}),
	)

	saved, err := svc.SaveNote(context.Background(), 7, models.Note{NoteID: noteID, Title: "plans", Content: "ship it"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), saved.Version)
}

func TestClientVault_LoadNote_CacheFallback(t *testing.T) {
	noteCache, err := store.NewNoteCache(context.Background(), filepath.Join(t.TempDir(), "notes.db"), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { noteCache.Close() })

	svc, vault, cache := newClientVault(t, noteCache)
	keys := crypto.NewKeyChainService()

	contentKey, err := keys.GenerateContentKey()
	require.NoError(t, err)
	cache.Put(7, contentKey)

	// Seed the offline cache through a successful save.
	vault.EXPECT().GetNote(gomock.Any(), gomock.Any()).Return(models.EncryptedNote{}, adapter.ErrNotFound)
	vault.EXPECT().PutNote(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, note models.EncryptedNote) (models.EncryptedNote, error) {
			note.Version = 1
			return note, nil
		})

	saved, err := svc.SaveNote(context.Background(), 7, models.Note{Title: "plans", Content: "ship it"})
	require.NoError(t, err)

	// Server goes away; the read is served from the local copy.
	vault.EXPECT().GetNote(gomock.Any(), saved.NoteID).
		Return(models.EncryptedNote{}, adapter.ErrInternalServerError)

	loaded, err := svc.LoadNote(context.Background(), 7, saved.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "plans", loaded.Title)
	assert.Equal(t, "ship it", loaded.Content)
}

func TestClientVault_ListNotes(t *testing.T) {
	svc, vault, cache := newClientVault(t, nil)
	keys := crypto.NewKeyChainService()

	contentKey, err := keys.GenerateContentKey()
	require.NoError(t, err)
	cache.Put(7, contentKey)

	title, err := keys.EncryptField(contentKey, []byte("groceries"))
	require.NoError(t, err)
	content, err := keys.EncryptField(contentKey, []byte("milk, eggs"))
	require.NoError(t, err)

	vault.EXPECT().ListNotes(gomock.Any(), int64(7)).
		Return([]models.EncryptedNote{{NoteID: uuid.New(), UserID: 7, Title: title, Content: content}}, nil)

	notes, err := svc.ListNotes(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "groceries", notes[0].Title)
	assert.Equal(t, "milk, eggs", notes[0].Content)
}

func TestClientVault_Logout(t *testing.T) {
	svc, _, cache := newClientVault(t, nil)

	cache.Put(7, []byte("content-key"))
	svc.Logout(7)

	assert.False(t, cache.Has(7))
}
