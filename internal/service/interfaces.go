package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

// AuthService handles account creation and verifier-based login on the
// server. It never sees a password: the client sends a one-way verifier.
type AuthService interface {
	// Register creates the account together with its initial credential
	// set and returns a signed session token.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error)

	// Login checks the verifier and returns a signed session token.
	// Unknown login and wrong verifier produce the same
	// ErrWrongCredentials.
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)

	// VerifyToken validates a bearer token and returns the user id from
	// its subject claim.
	VerifyToken(tokenString string) (int64, error)
}

// VaultService is the server-side storage surface for opaque credential
// sets and encrypted notes.
type VaultService interface {
	GetCredentials(ctx context.Context, userID int64) (models.CredentialSet, error)
	ReplaceCredentialSet(ctx context.Context, userID int64, req models.ReplaceCredentialSetRequest) (models.CredentialSet, error)
	ListNotes(ctx context.Context, userID int64) ([]models.EncryptedNote, error)
	GetNote(ctx context.Context, userID int64, noteID uuid.UUID) (models.EncryptedNote, error)
	PutNote(ctx context.Context, userID int64, note models.EncryptedNote) (models.EncryptedNote, error)
}

// Services bundles the server's business layer.
type Services struct {
	Auth  AuthService
	Vault VaultService
}

// NewServices wires the business layer onto the repositories.
func NewServices(repos *store.Repositories, appCfg config.App, log *logger.Logger) *Services {
	return &Services{
		Auth:  NewAuthService(repos, appCfg, log),
		Vault: NewVaultService(repos, log),
	}
}
