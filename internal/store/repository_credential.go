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
	sq "github.com/Masterminds/squirrel"
)

// credentialRepository is the PostgreSQL-backed implementation of
// [CredentialRepository]. It treats credential records as opaque: the
// server stores salts, cost identifiers and wrapped blobs without being
// able to open any of them.
type credentialRepository struct {
	db *DB
}

// NewCredentialRepository constructs a [CredentialRepository] on the given
// connection.
func NewCredentialRepository(db *DB) CredentialRepository {
	return &credentialRepository{db: db}
}

// GetCredentialSet returns the user's credentials with the current set
// version. A user with no set row yet gets an empty set at version zero.
func (r *credentialRepository) GetCredentialSet(ctx context.Context, userID int64) (models.CredentialSet, error) {
	log := logger.FromContext(ctx)

	set := models.CredentialSet{UserID: userID}

	err := r.db.QueryRowContext(ctx, getCredentialSetVersion, userID).Scan(&set.Version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Err(err).Str("func", "credentialRepository.GetCredentialSet").Int64("user_id", userID).Msg("failed to read set version")
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, getCredentials, userID)
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.GetCredentialSet").Int64("user_id", userID).Msg("failed to query credentials")
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		cred, err := scanCredential(rows)
		if err != nil {
			return models.CredentialSet{}, err
		}
		set.Credentials = append(set.Credentials, cred)
	}
	if err = rows.Err(); err != nil {
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return set, nil
}

// ReplaceCredentialSet implements the atomic replace the rotation protocols
// rely on: inside one transaction the current version is locked and
// compared, the whole set is swapped, the version is bumped and — when the
// rotation changed the password — the login verifier is updated. A stale
// expectedVersion rolls everything back with [ErrVersionConflict].
func (r *credentialRepository) ReplaceCredentialSet(ctx context.Context, userID, expectedVersion int64, creds []models.WrappingCredential, newVerifier string) (models.CredentialSet, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// A freshly registered user has no set row yet; create it at version 0
	// so the FOR UPDATE lock below always has a row to grab.
	if _, err = tx.ExecContext(ctx, insertCredentialSetVersion, userID); err != nil {
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var current int64
	if err = tx.QueryRowContext(ctx, getCredentialSetVersionForUpdate, userID).Scan(&current); err != nil {
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if current != expectedVersion {
		log.Warn().
			Str("func", "credentialRepository.ReplaceCredentialSet").
			Int64("user_id", userID).
			Int64("expected", expectedVersion).
			Int64("current", current).
			Msg("credential set version conflict")
		return models.CredentialSet{}, ErrVersionConflict
	}

	if _, err = tx.ExecContext(ctx, deleteCredentials, userID); err != nil {
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	insert := sq.Insert("credentials").
		Columns("user_id", "kind", "salt", "kdf_cost", "wrapped_key").
		PlaceholderFormat(sq.Dollar)
	for _, cred := range creds {
		wrapped, merr := cred.WrappedKey.MarshalText()
		if merr != nil {
			return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, merr)
		}
		insert = insert.Values(userID, string(cred.Kind), cred.Salt, cred.KDFCost, string(wrapped))
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var newVersion int64
	if err = tx.QueryRowContext(ctx, bumpCredentialSetVersion, userID).Scan(&newVersion); err != nil {
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if newVerifier != "" {
		if _, err = tx.ExecContext(ctx, updateUserVerifier, userID, newVerifier); err != nil {
			return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return models.CredentialSet{}, fmt.Errorf("%w: %w", ErrCommittingTransaction, err)
	}

	log.Info().
		Str("func", "credentialRepository.ReplaceCredentialSet").
		Int64("user_id", userID).
		Int64("version", newVersion).
		Int("credentials", len(creds)).
		Msg("credential set replaced")

	return models.CredentialSet{UserID: userID, Version: newVersion, Credentials: creds}, nil
}

func scanCredential(rows *sql.Rows) (models.WrappingCredential, error) {
	var (
		cred    models.WrappingCredential
		kind    string
		wrapped string
	)
	if err := rows.Scan(&kind, &cred.Salt, &cred.KDFCost, &wrapped); err != nil {
		return models.WrappingCredential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	cred.Kind = models.CredentialKind(kind)
	if err := cred.WrappedKey.UnmarshalText([]byte(wrapped)); err != nil {
		return models.WrappingCredential{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return cred, nil
}
