// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CredentialKind identifies which kind of user secret a wrapping credential
// was derived from. Each kind is an independent way to unwrap the same
// content key.
type CredentialKind string

const (
	CredentialPassword CredentialKind = "password"
	CredentialPIN      CredentialKind = "pin"
	CredentialRecovery CredentialKind = "recovery"
)

// Valid reports whether k is one of the known credential kinds.
func (k CredentialKind) Valid() bool {
	switch k {
	case CredentialPassword, CredentialPIN, CredentialRecovery:
		return true
	}
	return false
}

// WrappingCredential is one encrypted copy of the user's content key: the
// key wrapped under a key derived from a single secret. The server stores
// the record but cannot open it — salt and KDF cost are public, the secret
// never leaves the client.
//
// Rotation supersedes credentials wholesale (replace, never merge). Deleting
// every credential of a user while no session holds the unwrapped key makes
// the content key permanently unrecoverable.
type WrappingCredential struct {
	Kind       CredentialKind `json:"kind"`
	Salt       []byte         `json:"salt"`
	KDFCost    string         `json:"kdf_cost"`
	WrappedKey EncryptedBlob  `json:"wrapped_key"`
}

// CredentialSet is the complete, versioned set of wrapping credentials of
// one user. Version implements optimistic concurrency on the server:
// a replace with a stale version is rejected so two devices rotating at
// once cannot silently overwrite each other.
type CredentialSet struct {
	UserID      int64                `json:"user_id"`
	Version     int64                `json:"version"`
	Credentials []WrappingCredential `json:"credentials"`
}

// ByKind returns the first credential of the given kind, or false when the
// set holds none.
func (s CredentialSet) ByKind(kind CredentialKind) (WrappingCredential, bool) {
	for _, c := range s.Credentials {
		if c.Kind == kind {
			return c, true
		}
	}
	return WrappingCredential{}, false
}

// WithoutKind returns a copy of the credential list with every credential of
// the given kinds removed. Used by rotation flows to build the replacement
// set.
func (s CredentialSet) WithoutKind(kinds ...CredentialKind) []WrappingCredential {
	out := make([]WrappingCredential, 0, len(s.Credentials))
	for _, c := range s.Credentials {
		keep := true
		for _, kind := range kinds {
			if c.Kind == kind {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}
