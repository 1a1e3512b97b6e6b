// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// HTTPClientConfig configures the REST implementation of [VaultServer].
type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpVaultServer struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPVaultServer constructs the HTTP/REST implementation of
// [VaultServer]. It normalizes and validates cfg.BaseURL and configures the
// underlying resty client with the resolved base URL and request timeout.
func NewHTTPVaultServer(cfg HTTPClientConfig) (VaultServer, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid vault server address: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpVaultServer{client: cli}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [VaultServer].
func (h *httpVaultServer) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [VaultServer].
func (h *httpVaultServer) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [VaultServer]. POST /api/auth/register. The bearer
// token is extracted from the Authorization response header and stored.
func (h *httpVaultServer) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.User{}, fmt.Errorf("register parse bearer token: %w", err)
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("decode register response: %w", err)
	}

	h.SetToken(token)
	return user, nil
}

// Login implements [VaultServer]. POST /api/auth/login.
func (h *httpVaultServer) Login(ctx context.Context, req models.LoginRequest) (models.Token, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/auth/login")
	if err != nil {
		return models.Token{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Token{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	userID, err := parseUserIDFromJWT(token)
	if err != nil {
		return models.Token{}, fmt.Errorf("login parse user id: %w", err)
	}

	h.SetToken(token)
	return models.Token{SignedString: token, UserID: userID}, nil
}

// FetchCredentials implements [VaultServer]. GET /api/vault/credentials.
func (h *httpVaultServer) FetchCredentials(ctx context.Context, userID int64) (models.CredentialSet, error) {
	resp, err := h.authedRequest(ctx).Get("/api/vault/credentials")
	if err != nil {
		return models.CredentialSet{}, fmt.Errorf("fetch credentials request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CredentialSet{}, err
	}

	var set models.CredentialSet
	if err = json.Unmarshal(resp.Body(), &set); err != nil {
		return models.CredentialSet{}, fmt.Errorf("decode credential set: %w", err)
	}
	return set, nil
}

// ReplaceCredentialSet implements [VaultServer]. PUT /api/vault/credentials.
func (h *httpVaultServer) ReplaceCredentialSet(ctx context.Context, req models.ReplaceCredentialSetRequest) (models.CredentialSet, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Put("/api/vault/credentials")
	if err != nil {
		return models.CredentialSet{}, fmt.Errorf("replace credential set request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CredentialSet{}, err
	}

	var set models.CredentialSet
	if err = json.Unmarshal(resp.Body(), &set); err != nil {
		return models.CredentialSet{}, fmt.Errorf("decode credential set: %w", err)
	}
	return set, nil
}

// ListNotes implements [VaultServer]. GET /api/vault/notes.
func (h *httpVaultServer) ListNotes(ctx context.Context, userID int64) ([]models.EncryptedNote, error) {
	resp, err := h.authedRequest(ctx).Get("/api/vault/notes")
	if err != nil {
		return nil, fmt.Errorf("list notes request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var notes []models.EncryptedNote
	if err = json.Unmarshal(resp.Body(), &notes); err != nil {
		return nil, fmt.Errorf("decode notes response: %w", err)
	}
	return notes, nil
}

// GetNote implements [VaultServer]. GET /api/vault/notes/{id}.
func (h *httpVaultServer) GetNote(ctx context.Context, noteID uuid.UUID) (models.EncryptedNote, error) {
	resp, err := h.authedRequest(ctx).Get("/api/vault/notes/" + noteID.String())
	if err != nil {
		return models.EncryptedNote{}, fmt.Errorf("get note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EncryptedNote{}, err
	}

	var note models.EncryptedNote
	if err = json.Unmarshal(resp.Body(), &note); err != nil {
		return models.EncryptedNote{}, fmt.Errorf("decode note response: %w", err)
	}
	return note, nil
}

// PutNote implements [VaultServer]. PUT /api/vault/notes/{id}.
func (h *httpVaultServer) PutNote(ctx context.Context, note models.EncryptedNote) (models.EncryptedNote, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(note).
		Put("/api/vault/notes/" + note.NoteID.String())
	if err != nil {
		return models.EncryptedNote{}, fmt.Errorf("put note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.EncryptedNote{}, err
	}

	var saved models.EncryptedNote
	if err = json.Unmarshal(resp.Body(), &saved); err != nil {
		return models.EncryptedNote{}, fmt.Errorf("decode note response: %w", err)
	}
	return saved, nil
}

func (h *httpVaultServer) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(code)
	}

	switch code {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	}

	return fmt.Errorf("http %d: %s", code, body)
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

func parseUserIDFromJWT(tokenString string) (int64, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}
