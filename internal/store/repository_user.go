// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of
// [UserRepository].
type userRepository struct {
	db *DB
}

// NewUserRepository constructs a [UserRepository] on the given connection.
func NewUserRepository(db *DB) UserRepository {
	return &userRepository{db: db}
}

// CreateUser persists a new account and returns it with server-assigned
// fields. A unique_violation on the login column maps to
// [ErrLoginAlreadyExists].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Login, user.Verifier, user.Name)

	var created models.User
	err := row.Scan(&created.UserID, &created.Login, &created.Verifier, &created.Name, &created.CreatedAt)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "userRepository.CreateUser").Str("login", user.Login).Msg("failed to create user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// FindByLogin returns the account for a login, or [ErrUserNotFound].
func (r *userRepository) FindByLogin(ctx context.Context, login string) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findUserByLogin, login)

	var user models.User
	err := row.Scan(&user.UserID, &user.Login, &user.Verifier, &user.Name, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "userRepository.FindByLogin").Str("login", login).Msg("failed to find user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// UpdateVerifier replaces the stored login verifier.
func (r *userRepository) UpdateVerifier(ctx context.Context, userID int64, verifier string) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, updateUserVerifier, userID, verifier)
	if err != nil {
		log.Err(err).Str("func", "userRepository.UpdateVerifier").Int64("user_id", userID).Msg("failed to update verifier")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
