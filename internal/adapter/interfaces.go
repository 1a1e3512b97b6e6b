// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the client and the
// vault server.
//
// The primary abstraction is [VaultServer], which decouples the client
// services and rotation flows from the underlying protocol. The package
// ships an HTTP/REST implementation ([NewHTTPVaultServer]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so callers can use [errors.Is] for transport-agnostic
// handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/vault_server_mock.go -package=mock

// VaultServer is the storage collaborator: it stores and returns opaque
// byte blobs and metadata by id, and never possesses plaintext keys or
// content. Implementations handle serialization, bearer-token management
// and mapping transport errors to this package's sentinels.
type VaultServer interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. Called after a successful Register or Login,
	// or with an externally issued token for identity-provider accounts.
	SetToken(token string)

	// Token returns the currently stored bearer token, or "".
	Token() string

	// Register creates an account together with its initial credential
	// set. On success the bearer token from the response is stored via
	// SetToken and the created user (with server-assigned id) is returned.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login authenticates with the client-computed verifier. On success
	// the bearer token is stored via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.Token, error)

	// FetchCredentials returns the user's complete versioned credential
	// set.
	FetchCredentials(ctx context.Context, userID int64) (models.CredentialSet, error)

	// ReplaceCredentialSet atomically replaces the whole credential set.
	// The server rejects the request with ErrConflict when
	// req.ExpectedVersion is stale; the caller must re-fetch and recompute
	// rather than retry blindly.
	ReplaceCredentialSet(ctx context.Context, req models.ReplaceCredentialSetRequest) (models.CredentialSet, error)

	// ListNotes returns every encrypted note of the user.
	ListNotes(ctx context.Context, userID int64) ([]models.EncryptedNote, error)

	// GetNote returns a single encrypted note by id.
	GetNote(ctx context.Context, noteID uuid.UUID) (models.EncryptedNote, error)

	// PutNote creates or updates a note. The server enforces a per-note
	// version check and returns ErrConflict on a stale version.
	PutNote(ctx context.Context, note models.EncryptedNote) (models.EncryptedNote, error)
}
