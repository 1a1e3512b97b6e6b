// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	createUser = `
		INSERT INTO users (login, verifier, name)
		VALUES ($1, $2, $3)
		RETURNING user_id, login, verifier, name, created_at;`

	findUserByLogin = `
		SELECT user_id, login, verifier, name, created_at
		FROM users
		WHERE login = $1;`

	updateUserVerifier = `
		UPDATE users
		SET verifier = $2
		WHERE user_id = $1;`

	getCredentialSetVersion = `
		SELECT version
		FROM credential_sets
		WHERE user_id = $1;`

	getCredentialSetVersionForUpdate = `
		SELECT version
		FROM credential_sets
		WHERE user_id = $1
		FOR UPDATE;`

	getCredentials = `
		SELECT kind, salt, kdf_cost, wrapped_key
		FROM credentials
		WHERE user_id = $1
		ORDER BY kind;`

	deleteCredentials = `
		DELETE FROM credentials
		WHERE user_id = $1;`

	insertCredentialSetVersion = `
		INSERT INTO credential_sets (user_id, version)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING;`

	bumpCredentialSetVersion = `
		UPDATE credential_sets
		SET version = version + 1
		WHERE user_id = $1
		RETURNING version;`

	getNote = `
		SELECT note_id, user_id, title, content, version, created_at, updated_at
		FROM notes
		WHERE user_id = $1 AND note_id = $2;`

	getAllNotes = `
		SELECT note_id, user_id, title, content, version, created_at, updated_at
		FROM notes
		WHERE user_id = $1
		ORDER BY updated_at DESC;`

	upsertNote = `
		INSERT INTO notes (note_id, user_id, title, content, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 1, NOW(), NOW())
		ON CONFLICT (note_id) DO UPDATE
		SET title = EXCLUDED.title,
			content = EXCLUDED.content,
			version = notes.version + 1,
			updated_at = NOW()
		WHERE notes.user_id = EXCLUDED.user_id AND notes.version = $5
		RETURNING note_id, user_id, title, content, version, created_at, updated_at;`
)
