// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVaultServer(t *testing.T, handler http.Handler) VaultServer {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	vault, err := NewHTTPVaultServer(HTTPClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return vault
}

func signedTestJWT(t *testing.T, userID string) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": userID}).
		SignedString([]byte("test-sign-key"))
	require.NoError(t, err)
	return token
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"bare host:port", "localhost:8080", "http://localhost:8080", false},
		{"explicit scheme", "https://vault.example.com/", "https://vault.example.com", false},
		{"surrounding space", "  localhost:8080  ", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"spaces only", "   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegister_StoresBearerToken(t *testing.T) {
	token := signedTestJWT(t, "7")

	vault := newTestVaultServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.User.Login)

		w.Header().Set("Authorization", "Bearer "+token)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.User{UserID: 7, Login: "alice"})
	}))

	user, err := vault.Register(context.Background(), models.RegisterRequest{User: models.User{Login: "alice"}})
	require.NoError(t, err)

	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, token, vault.Token(), "the session token must come from the Authorization header")
}

func TestLogin_ParsesUserIDFromToken(t *testing.T) {
	token := signedTestJWT(t, "42")

	vault := newTestVaultServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		w.Header().Set("Authorization", "Bearer "+token)
		json.NewEncoder(w).Encode(models.User{UserID: 42, Login: "alice"})
	}))

	got, err := vault.Login(context.Background(), models.LoginRequest{Login: "alice", Verifier: "deadbeef"})
	require.NoError(t, err)

	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, token, got.SignedString)
}

func TestLogin_WrongCredentials(t *testing.T) {
	vault := newTestVaultServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "wrong login or password", http.StatusUnauthorized)
	}))

	_, err := vault.Login(context.Background(), models.LoginRequest{Login: "alice", Verifier: "bad"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorContains(t, err, "wrong login or password")
}

func TestFetchCredentials_SendsBearerToken(t *testing.T) {
	var gotAuth string
	vault := newTestVaultServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(models.CredentialSet{UserID: 7, Version: 3})
	}))
	vault.SetToken("session-token")

	set, err := vault.FetchCredentials(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, "Bearer session-token", gotAuth)
	assert.Equal(t, int64(3), set.Version)
}

// 409 is the signal the rotation retry logic keys on: it must surface as
// ErrConflict, not as a generic failure.
func TestReplaceCredentialSet_Conflict(t *testing.T) {
	vault := newTestVaultServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/vault/credentials", r.URL.Path)
		http.Error(w, "credential set version conflict", http.StatusConflict)
	}))
	vault.SetToken("session-token")

	_, err := vault.ReplaceCredentialSet(context.Background(), models.ReplaceCredentialSetRequest{UserID: 7, ExpectedVersion: 3})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetNote_NotFound(t *testing.T) {
	vault := newTestVaultServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "note not found", http.StatusNotFound)
	}))
	vault.SetToken("session-token")

	_, err := vault.GetNote(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutNote_RoundTrip(t *testing.T) {
	noteID := uuid.New()

	vault := newTestVaultServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/vault/notes/"+noteID.String(), r.URL.Path)

		var note models.EncryptedNote
		require.NoError(t, json.NewDecoder(r.Body).Decode(&note))
		note.Version++
		json.NewEncoder(w).Encode(note)
	}))
	vault.SetToken("session-token")

	saved, err := vault.PutNote(context.Background(), models.EncryptedNote{NoteID: noteID, UserID: 7, Version: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), saved.Version)
}

func TestMapHTTPError_StatusTaxonomy(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			vault := newTestVaultServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			vault.SetToken("session-token")

			_, err := vault.ListNotes(context.Background(), 7)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
