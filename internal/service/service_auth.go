// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/store"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

type authService struct {
	repos *store.Repositories
	log   *logger.Logger

	tokenSignKey  []byte
	tokenIssuer   string
	tokenDuration time.Duration
}

// NewAuthService constructs the server [AuthService].
func NewAuthService(repos *store.Repositories, appCfg config.App, log *logger.Logger) AuthService {
	return &authService{
		repos:         repos,
		log:           log,
		tokenSignKey:  []byte(appCfg.TokenSignKey),
		tokenIssuer:   appCfg.TokenIssuer,
		tokenDuration: appCfg.TokenDuration,
	}
}

// Register implements [AuthService]. The account and its initial credential
// set are created together so a user never exists without a way to unwrap
// the content key. Accounts arriving from an external identity provider may
// register with an empty verifier and adopt a password later.
func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error) {
	if req.User.Login == "" {
		return models.User{}, models.Token{}, fmt.Errorf("%w: empty login", ErrInvalidDataProvided)
	}
	if err := validateCredentials(req.Credentials); err != nil {
		return models.User{}, models.Token{}, err
	}

	user, err := s.repos.Users.CreateUser(ctx, req.User)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	if _, err = s.repos.Credentials.ReplaceCredentialSet(ctx, user.UserID, 0, req.Credentials, ""); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("store initial credentials: %w", err)
	}

	token, err := s.issueToken(user.UserID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	s.log.Info().Int64("user_id", user.UserID).Msg("user registered")
	return user, token, nil
}

// Login implements [AuthService]. Verifier comparison is constant-time and
// the error is identical for unknown logins and wrong verifiers.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error) {
	user, err := s.repos.Users.FindByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, models.Token{}, ErrWrongCredentials
		}
		return models.User{}, models.Token{}, err
	}

	if user.Verifier == "" ||
		subtle.ConstantTimeCompare([]byte(user.Verifier), []byte(req.Verifier)) != 1 {
		return models.User{}, models.Token{}, ErrWrongCredentials
	}

	token, err := s.issueToken(user.UserID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

// VerifyToken implements [AuthService].
func (s *authService) VerifyToken(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.tokenSignKey, nil
	}, jwt.WithIssuer(s.tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	return userID, nil
}

func (s *authService) issueToken(userID int64) (models.Token, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.tokenIssuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("sign token: %w", err)
	}

	return models.Token{SignedString: signed, UserID: userID}, nil
}

// validateCredentials checks only structure: kinds are known, salts and
// blobs are present. The server cannot (and must not) check anything
// deeper.
func validateCredentials(creds []models.WrappingCredential) error {
	if len(creds) == 0 {
		return fmt.Errorf("%w: empty credential set", ErrInvalidDataProvided)
	}
	for _, c := range creds {
		if !c.Kind.Valid() {
			return fmt.Errorf("%w: unknown credential kind %q", ErrInvalidDataProvided, c.Kind)
		}
		if len(c.Salt) == 0 || c.KDFCost == "" || c.WrappedKey.IsZero() {
			return fmt.Errorf("%w: incomplete %s credential", ErrInvalidDataProvided, c.Kind)
		}
	}
	return nil
}
